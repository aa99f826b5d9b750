package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScrollablePanel is a bordered, titled viewport.
type ScrollablePanel struct {
	Title    string
	Focused  bool
	viewport viewport.Model
	content  string
	width    int
	height   int
}

// NewScrollablePanel creates a new scrollable panel.
func NewScrollablePanel(title string) ScrollablePanel {
	return ScrollablePanel{
		Title:    title,
		viewport: viewport.New(80, 10),
	}
}

// SetSize sets the panel dimensions, borders included.
func (p *ScrollablePanel) SetSize(width, height int) {
	p.width = width
	p.height = height

	// title line + borders
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-3, 3)
}

// SetContent replaces the content and scrolls back to the top.
func (p *ScrollablePanel) SetContent(content string) {
	p.content = content
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// Content returns the current content.
func (p *ScrollablePanel) Content() string {
	return p.content
}

// SetFocused sets the focus state.
func (p *ScrollablePanel) SetFocused(focused bool) {
	p.Focused = focused
}

// Update forwards messages to the viewport while focused.
func (p *ScrollablePanel) Update(msg tea.Msg) tea.Cmd {
	if !p.Focused {
		return nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// ScrollUp scrolls up by n lines.
func (p *ScrollablePanel) ScrollUp(n int) {
	p.viewport.LineUp(n)
}

// ScrollDown scrolls down by n lines.
func (p *ScrollablePanel) ScrollDown(n int) {
	p.viewport.LineDown(n)
}

// PageUp scrolls up by one page.
func (p *ScrollablePanel) PageUp() {
	p.viewport.ViewUp()
}

// PageDown scrolls down by one page.
func (p *ScrollablePanel) PageDown() {
	p.viewport.ViewDown()
}

// YOffset returns the index of the first visible line.
func (p *ScrollablePanel) YOffset() int {
	return p.viewport.YOffset
}

// AtTop returns whether the viewport is at the top.
func (p *ScrollablePanel) AtTop() bool {
	return p.viewport.AtTop()
}

// AtBottom returns whether the viewport is at the bottom.
func (p *ScrollablePanel) AtBottom() bool {
	return p.viewport.AtBottom()
}

// View renders the panel.
func (p *ScrollablePanel) View() string {
	contentWidth := max(p.width-2, 10)

	title := panelTitleStyle.Render(p.Title)

	indicator := ""
	if !(p.viewport.AtTop() && p.viewport.AtBottom()) {
		indicator = scrollIndicatorStyle.Render(fmt.Sprintf("[%3.f%%]", p.viewport.ScrollPercent()*100))
	}

	spacing := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(indicator)-2, 1)
	titleLine := title + strings.Repeat(" ", spacing) + indicator

	style := panelStyle
	if p.Focused {
		style = panelFocusedStyle
	}
	return style.Width(contentWidth).Render(titleLine + "\n" + p.viewport.View())
}
