// Package render formats keymaps for the terminal.
package render

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/gerunddev/exabind/internal/keymap"
	"github.com/gerunddev/exabind/internal/keys"
)

// Category sort orders accepted by SortCategories.
const (
	SortName  = "name"
	SortCount = "count"
)

const (
	maxNameWidth = 48
	ellipsis     = "…"
)

// Theme holds the configurable colors.
type Theme struct {
	Accent string
	Keycap string
}

// Renderer turns keymap values into styled text.
type Renderer struct {
	title   lipgloss.Style
	keycap  lipgloss.Style
	dim     lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	rebound lipgloss.Style
}

// New creates a Renderer using the theme colors.
func New(theme Theme) *Renderer {
	return &Renderer{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Bold(true),
		keycap:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Keycap)).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#727072")),
		added:   lipgloss.NewStyle().Foreground(lipgloss.Color("#a9dc76")),
		removed: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6188")),
		rebound: lipgloss.NewStyle().Foreground(lipgloss.Color("#fc9867")),
	}
}

// SortCategories orders categories by name, or by descending action count
// with ties broken by name. Unknown orders fall back to name.
func SortCategories(categories []keymap.CategoryCount, order string) []keymap.CategoryCount {
	out := slices.Clone(categories)
	slices.SortFunc(out, func(a, b keymap.CategoryCount) int {
		if order == SortCount {
			if c := cmp.Compare(b.Count, a.Count); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Keycaps renders one shortcut as a row of styled key labels.
func (r *Renderer) Keycaps(s keys.Shortcut) string {
	tokens := s.Tokens()
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = r.keycap.Render(t.Label())
	}
	return strings.Join(parts, " ")
}

// Bindings renders every alternative shortcut of an action.
func (r *Renderer) Bindings(a keymap.Action) string {
	return r.shortcuts(a.Shortcuts())
}

func (r *Renderer) shortcuts(list []keys.Shortcut) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = r.Keycaps(s)
	}
	return strings.Join(parts, r.dim.Render(" / "))
}

// CategoryList renders one line per category with its action count.
func (r *Renderer) CategoryList(categories []keymap.CategoryCount) string {
	width := 0
	for _, c := range categories {
		width = max(width, nameWidth(c.Name))
	}

	var b strings.Builder
	for _, c := range categories {
		b.WriteString(r.title.Render(pad(c.Name, width)))
		b.WriteString("  ")
		b.WriteString(r.dim.Render(fmt.Sprintf("%3d", c.Count)))
		b.WriteString("\n")
	}
	return b.String()
}

// ActionTable renders a category heading followed by its actions and
// their bindings in aligned columns.
func (r *Renderer) ActionTable(category string, actions []keymap.Action) string {
	return r.title.Render(category) + "\n" + r.ActionRows(actions)
}

// ActionRows renders actions and their bindings in aligned columns,
// one indented line each.
func (r *Renderer) ActionRows(actions []keymap.Action) string {
	width := 0
	for _, a := range actions {
		width = max(width, nameWidth(a.Name()))
	}

	var b strings.Builder
	for _, a := range actions {
		b.WriteString("  ")
		b.WriteString(pad(a.Name(), width))
		b.WriteString("  ")
		b.WriteString(r.Bindings(a))
		b.WriteString("\n")
	}
	return b.String()
}

// Changes renders a keymap diff, one line per change.
func (r *Renderer) Changes(changes []keymap.Change) string {
	if len(changes) == 0 {
		return r.dim.Render("no changes") + "\n"
	}

	var b strings.Builder
	for _, c := range changes {
		name := c.Category + " / " + c.Action
		switch c.Kind {
		case keymap.Added:
			b.WriteString(r.added.Render("+ " + name))
			b.WriteString("  " + r.shortcuts(c.After))
		case keymap.Removed:
			b.WriteString(r.removed.Render("- " + name))
			b.WriteString("  " + r.shortcuts(c.Before))
		case keymap.Rebound:
			b.WriteString(r.rebound.Render("~ " + name))
			b.WriteString("  " + r.shortcuts(c.Before))
			b.WriteString(r.dim.Render(" → "))
			b.WriteString(r.shortcuts(c.After))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func nameWidth(s string) int {
	return min(runewidth.StringWidth(s), maxNameWidth)
}

// pad truncates s to maxNameWidth cells and fills it to width cells.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, maxNameWidth, ellipsis), width)
}
