package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/keys"
	"github.com/gerunddev/exabind/internal/render"
)

// Options configures the browser.
type Options struct {
	Source string
	Sort   string
	Theme  render.Theme
}

type pane int

const (
	paneCategories pane = iota
	paneActions
)

// modifierFilter restricts the browser to actions using one of mods.
type modifierFilter struct {
	name string
	mods []keys.Modifier
}

var modifierFilters = []modifierFilter{
	{},
	{name: "Meta", mods: []keys.Modifier{keys.LeftMeta, keys.RightMeta}},
	{name: "Super", mods: []keys.Modifier{keys.LeftSuper, keys.RightSuper}},
	{name: "Ctrl", mods: []keys.Modifier{keys.LeftControl, keys.RightControl}},
	{name: "Alt", mods: []keys.Modifier{keys.LeftAlt, keys.RightAlt}},
	{name: "Shift", mods: []keys.Modifier{keys.LeftShift, keys.RightShift}},
}

func (f modifierFilter) match(a keymap.Action) bool {
	if len(f.mods) == 0 {
		return true
	}
	for _, m := range f.mods {
		if a.UsesModifier(m) {
			return true
		}
	}
	return false
}

// Model is the Bubble Tea model of the keymap browser.
type Model struct {
	header       Header
	actionsPanel *ScrollablePanel
	helpWindow   FloatingWindow
	help         help.Model
	keys         KeyMap

	km       *keymap.KeyMap
	renderer *render.Renderer
	sort     string

	// categories visible under the current filter, with filtered counts
	categories []keymap.CategoryCount
	cursor     int
	offset     int
	filter     int
	focus      pane

	quitting    bool
	initialized bool

	width  int
	height int
}

// NewModel creates a browser over km.
func NewModel(km *keymap.KeyMap, opts Options) Model {
	bindings := DefaultKeyMap()
	panel := NewScrollablePanel("Actions")

	header := NewHeader(bindings)
	header.Name = km.Name()
	header.Source = opts.Source

	m := Model{
		header:       header,
		actionsPanel: &panel,
		helpWindow:   NewFloatingWindow("Keys"),
		help:         help.New(),
		keys:         bindings,
		km:           km,
		renderer:     render.New(opts.Theme),
		sort:         opts.Sort,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		if m.helpWindow.IsVisible() {
			switch {
			case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.Help):
				m.helpWindow.Hide()
			case key.Matches(msg, m.keys.Up):
				m.helpWindow.ScrollUp(1)
			case key.Matches(msg, m.keys.Down):
				m.helpWindow.ScrollDown(1)
			}
			return m, nil
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.helpWindow.Show(m.help.FullHelpView(m.keys.FullHelp()))

	case key.Matches(msg, m.keys.Switch):
		if m.focus == paneCategories {
			m.focus = paneActions
		} else {
			m.focus = paneCategories
		}
		m.actionsPanel.SetFocused(m.focus == paneActions)

	case key.Matches(msg, m.keys.Filter):
		m.filter = (m.filter + 1) % len(modifierFilters)
		m.refresh()

	case key.Matches(msg, m.keys.Up):
		if m.focus == paneActions {
			m.actionsPanel.ScrollUp(1)
		} else {
			m.moveCursor(-1)
		}

	case key.Matches(msg, m.keys.Down):
		if m.focus == paneActions {
			m.actionsPanel.ScrollDown(1)
		} else {
			m.moveCursor(1)
		}

	case key.Matches(msg, m.keys.PageUp):
		if m.focus == paneActions {
			m.actionsPanel.PageUp()
		} else {
			m.moveCursor(-m.listRows())
		}

	case key.Matches(msg, m.keys.PageDown):
		if m.focus == paneActions {
			m.actionsPanel.PageDown()
		} else {
			m.moveCursor(m.listRows())
		}
	}

	return m, nil
}

// SelectedCategory returns the highlighted category, or "" if none is visible.
func (m Model) SelectedCategory() string {
	if len(m.categories) == 0 {
		return ""
	}
	return m.categories[m.cursor].Name
}

// moveCursor moves the category cursor by delta, clamped to the list.
func (m *Model) moveCursor(delta int) {
	if len(m.categories) == 0 {
		return
	}
	next := min(max(m.cursor+delta, 0), len(m.categories)-1)
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.ensureVisible()
	m.loadActions()
}

// refresh recomputes the visible categories for the current filter and
// keeps the selection on the same category when it is still visible.
func (m *Model) refresh() {
	selected := m.SelectedCategory()
	f := modifierFilters[m.filter]

	var visible []keymap.CategoryCount
	total := 0
	for _, c := range render.SortCategories(m.km.Categories(), m.sort) {
		n := 0
		for _, a := range m.km.ActionsByCategory(c.Name) {
			if f.match(a) {
				n++
			}
		}
		if n > 0 {
			visible = append(visible, keymap.CategoryCount{Name: c.Name, Count: n})
			total += n
		}
	}
	m.categories = visible

	m.cursor = 0
	for i, c := range m.categories {
		if c.Name == selected {
			m.cursor = i
			break
		}
	}

	m.header.Categories = len(m.categories)
	m.header.Actions = total
	m.header.Filter = f.name

	m.ensureVisible()
	m.loadActions()
}

func (m *Model) loadActions() {
	name := m.SelectedCategory()
	if name == "" {
		m.actionsPanel.Title = "Actions"
		m.actionsPanel.SetContent(emptyStyle.Render("No actions match the current filter."))
		return
	}

	f := modifierFilters[m.filter]
	var actions []keymap.Action
	for _, a := range m.km.ActionsByCategory(name) {
		if f.match(a) {
			actions = append(actions, a)
		}
	}

	m.actionsPanel.Title = name
	m.actionsPanel.SetContent(m.renderer.ActionRows(actions))
}

func (m Model) headerHeight() int {
	if m.header.Source != "" {
		return 4
	}
	return 3
}

func (m Model) bodyHeight() int {
	return max(m.height-m.headerHeight(), 6)
}

// listRows is the number of category lines that fit in the list pane.
func (m Model) listRows() int {
	return max(m.bodyHeight()-3, 1)
}

func (m Model) listWidth() int {
	widest := 0
	for _, c := range m.km.Categories() {
		widest = max(widest, runewidth.StringWidth(c.Name))
	}
	return min(max(widest+10, 24), max(m.width*2/5, 24))
}

func (m *Model) ensureVisible() {
	rows := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.categories)-rows), 0)
}

func (m *Model) updateLayout() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width
	m.actionsPanel.SetSize(m.width-m.listWidth(), m.bodyHeight())
	m.actionsPanel.SetFocused(m.focus == paneActions)
	m.helpWindow.SetSize(m.width, m.height)
	m.ensureVisible()
}

func (m Model) categoriesView() string {
	width := m.listWidth()
	contentWidth := width - 2
	nameWidth := max(contentWidth-2-5, 4)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Categories"))

	end := min(m.offset+m.listRows(), len(m.categories))
	for i := m.offset; i < end; i++ {
		c := m.categories[i]
		name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)
		style := categoryStyle
		if i == m.cursor {
			style = categorySelectedStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(name))
		b.WriteString(categoryCountStyle.Render(fmt.Sprintf(" %4d", c.Count)))
	}
	if len(m.categories) == 0 {
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("none"))
	}

	style := panelStyle
	if m.focus == paneCategories {
		style = panelFocusedStyle
	}
	return style.Width(contentWidth).Height(m.bodyHeight() - 2).Render(b.String())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.initialized {
		return "Loading..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.categoriesView(), m.actionsPanel.View())
	view := lipgloss.NewStyle().MaxWidth(m.width).Render(m.header.View() + "\n" + body)

	if m.helpWindow.IsVisible() {
		return m.helpWindow.Overlay(view)
	}
	return view
}

// Run starts the browser in the alternate screen.
func Run(km *keymap.KeyMap, opts Options) error {
	p := tea.NewProgram(NewModel(km, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
