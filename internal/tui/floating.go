package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// FloatingWindow is a centered modal overlay.
type FloatingWindow struct {
	Title    string
	viewport viewport.Model
	visible  bool
	width    int
	height   int
}

// NewFloatingWindow creates a new floating window.
func NewFloatingWindow(title string) FloatingWindow {
	return FloatingWindow{
		Title:    title,
		viewport: viewport.New(60, 10),
	}
}

// windowSize returns the outer window size for the current screen:
// 60% of the screen within fixed bounds.
func (f *FloatingWindow) windowSize() (int, int) {
	w := min(max(f.width*60/100, 40), 100)
	h := min(max(f.height*60/100, 10), 30)
	return w, h
}

// SetSize sets the available screen size for centering calculations.
func (f *FloatingWindow) SetSize(width, height int) {
	f.width = width
	f.height = height

	w, h := f.windowSize()
	frameH, frameV := floatingWindowStyle.GetFrameSize()
	f.viewport.Width = w - frameH
	f.viewport.Height = h - frameV - 1
}

// Show displays the floating window with the given content.
func (f *FloatingWindow) Show(content string) {
	f.viewport.SetContent(content)
	f.viewport.GotoTop()
	f.visible = true
}

// Hide hides the floating window.
func (f *FloatingWindow) Hide() {
	f.visible = false
}

// IsVisible returns whether the window is visible.
func (f *FloatingWindow) IsVisible() bool {
	return f.visible
}

// ScrollUp scrolls the content up.
func (f *FloatingWindow) ScrollUp(n int) {
	f.viewport.LineUp(n)
}

// ScrollDown scrolls the content down.
func (f *FloatingWindow) ScrollDown(n int) {
	f.viewport.LineDown(n)
}

// View renders the window box. Returns an empty string if not visible.
func (f FloatingWindow) View() string {
	if !f.visible {
		return ""
	}

	w, h := f.windowSize()
	frameH, _ := floatingWindowStyle.GetFrameSize()
	contentWidth := w - frameH

	title := floatingTitleStyle.Render(f.Title)
	hints := helpKeyStyle.Render("Enter/Esc") + helpDescStyle.Render(":close")
	spacing := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(hints), 1)
	titleLine := title + strings.Repeat(" ", spacing) + hints

	return floatingWindowStyle.Width(contentWidth).MaxHeight(h).
		Render(titleLine + "\n" + f.viewport.View())
}

// Overlay replaces the middle lines of base with the centered window.
func (f FloatingWindow) Overlay(base string) string {
	window := f.View()
	if window == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	for len(baseLines) < f.height {
		baseLines = append(baseLines, "")
	}

	windowLines := strings.Split(window, "\n")
	top := max((f.height-len(windowLines))/2, 0)
	left := strings.Repeat(" ", max((f.width-lipgloss.Width(window))/2, 0))
	for i, line := range windowLines {
		if top+i < len(baseLines) {
			baseLines[top+i] = left + line
		}
	}
	return strings.Join(baseLines, "\n")
}
