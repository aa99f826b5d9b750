// Package keymap holds the normalized, read-only model of a user's shortcuts:
// actions grouped by category, each reachable through one or more canonical
// key combinations.
//
// A KeyMap is built once and never modified, so it can be shared between
// goroutines without locking.
package keymap

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/gerunddev/exabind/internal/keys"
)

// Action is a user-facing command and the shortcuts bound to it.
type Action struct {
	name      string
	shortcuts []keys.Shortcut
}

// NewAction returns an action bound to shortcuts. It returns false when
// shortcuts is empty, since unbound actions are never part of a KeyMap.
func NewAction(name string, shortcuts ...keys.Shortcut) (Action, bool) {
	if len(shortcuts) == 0 {
		return Action{}, false
	}
	return Action{name: name, shortcuts: slices.Clone(shortcuts)}, true
}

// Name returns the display name of the action.
func (a Action) Name() string {
	return a.name
}

// Shortcuts returns the alternative bindings of the action in source order.
func (a Action) Shortcuts() []keys.Shortcut {
	return slices.Clone(a.shortcuts)
}

// UsesModifier reports whether any binding of the action includes m.
func (a Action) UsesModifier(m keys.Modifier) bool {
	for _, sc := range a.shortcuts {
		if sc.UsesModifier(m) {
			return true
		}
	}
	return false
}

// Equal reports whether both actions share a name and the same bindings.
func (a Action) Equal(other Action) bool {
	return a.name == other.name &&
		slices.EqualFunc(a.shortcuts, other.shortcuts, keys.Shortcut.Equal)
}

// String formats the action as "name: binding, binding".
func (a Action) String() string {
	parts := make([]string, len(a.shortcuts))
	for i, sc := range a.shortcuts {
		parts[i] = sc.String()
	}
	return fmt.Sprintf("%s: %s", a.name, strings.Join(parts, ", "))
}

// CategoryCount is one entry of KeyMap.Categories.
type CategoryCount struct {
	Name  string
	Count int
}

// KeyMap is the result of ingesting one shortcut document.
type KeyMap struct {
	name       string
	categories map[string][]Action
	actions    int
}

// New builds a KeyMap from categorized actions. Unbound actions and empty
// categories are dropped. The input map is copied.
func New(name string, categories map[string][]Action) *KeyMap {
	km := &KeyMap{name: name, categories: make(map[string][]Action, len(categories))}
	for category, actions := range categories {
		for _, a := range actions {
			km.add(category, a)
		}
	}
	return km
}

func (km *KeyMap) add(category string, a Action) {
	if len(a.shortcuts) == 0 {
		return
	}
	km.categories[category] = append(km.categories[category], a)
	km.actions++
}

// Name returns the source identifier of the keymap, e.g. "KDE".
func (km *KeyMap) Name() string {
	return km.name
}

// Len returns the number of actions across all categories.
func (km *KeyMap) Len() int {
	return km.actions
}

// Categories returns every category with its action count.
// The order is unspecified.
func (km *KeyMap) Categories() []CategoryCount {
	out := make([]CategoryCount, 0, len(km.categories))
	for name, actions := range km.categories {
		out = append(out, CategoryCount{Name: name, Count: len(actions)})
	}
	return out
}

// HasCategory reports whether the keymap has actions under name.
func (km *KeyMap) HasCategory(name string) bool {
	_, ok := km.categories[name]
	return ok
}

// ActionsByCategory returns the actions of a category in source order.
// An unknown category yields an empty slice.
func (km *KeyMap) ActionsByCategory(name string) []Action {
	return slices.Clone(km.categories[name])
}

// Actions iterates over every action of every category. Category order is
// unspecified; actions within a category keep source order.
func (km *KeyMap) Actions() iter.Seq[Action] {
	return func(yield func(Action) bool) {
		for _, actions := range km.categories {
			for _, a := range actions {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// String dumps the keymap with categories sorted by name.
func (km *KeyMap) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "keymap name=%s:", km.name)
	for _, category := range slices.Sorted(maps.Keys(km.categories)) {
		for _, a := range km.categories[category] {
			fmt.Fprintf(&b, "\n\t%s", a)
		}
	}
	return b.String()
}
