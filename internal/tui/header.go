package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Header displays the keymap summary and key hints.
type Header struct {
	Name       string
	Source     string
	Categories int
	Actions    int
	Filter     string
	help       help.Model
	keys       KeyMap
	width      int
}

// NewHeader creates a new header component.
func NewHeader(keys KeyMap) Header {
	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.ShortSeparator = helpSeparatorStyle
	h.ShortSeparator = "  "
	return Header{help: h, keys: keys}
}

// SetWidth sets the component width.
func (h *Header) SetWidth(w int) {
	h.width = w
	h.help.Width = w
}

// View renders the header.
func (h Header) View() string {
	borderH := headerStyle.GetHorizontalBorderSize()
	styleWidth := max(h.width-borderH, 40)

	separator := headerLabelStyle.Render("  |  ")

	parts := []string{
		headerValueStyle.Render(h.Name),
		headerLabelStyle.Render(fmt.Sprintf("%d categories, %d actions", h.Categories, h.Actions)),
	}
	if h.Filter != "" {
		parts = append(parts, headerLabelStyle.Render("filter: ")+filterActiveStyle.Render(h.Filter))
	}
	left := strings.Join(parts, separator)

	hints := h.help.ShortHelpView(h.keys.ShortHelp())

	spacing := styleWidth - headerStyle.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(hints)
	content := left + strings.Repeat(" ", max(spacing, 1)) + hints
	if h.Source != "" {
		content += "\n" + headerLabelStyle.Render(h.Source)
	}

	return headerStyle.Width(styleWidth).Render(content)
}
