package keymap

import (
	"cmp"
	"maps"
	"slices"

	"github.com/gerunddev/exabind/internal/keys"
)

// ChangeKind classifies a Change.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Rebound ChangeKind = "rebound"
)

// Change is one difference between two keymaps.
type Change struct {
	Kind     ChangeKind
	Category string
	Action   string
	Before   []keys.Shortcut // nil for Added
	After    []keys.Shortcut // nil for Removed
}

// Diff compares two keymaps action by action. Actions are matched by
// category and name; repeated names within a category are matched in order.
// Changes are sorted by category, then action name.
func Diff(before, after *KeyMap) []Change {
	var changes []Change

	categories := make(map[string]struct{})
	for name := range before.categories {
		categories[name] = struct{}{}
	}
	for name := range after.categories {
		categories[name] = struct{}{}
	}

	for _, category := range slices.Sorted(maps.Keys(categories)) {
		changes = append(changes, diffCategory(category,
			before.categories[category], after.categories[category])...)
	}

	slices.SortStableFunc(changes, func(a, b Change) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Action, b.Action),
		)
	})
	return changes
}

func diffCategory(category string, before, after []Action) []Change {
	var changes []Change

	remaining := make(map[string][]Action)
	for _, a := range after {
		remaining[a.name] = append(remaining[a.name], a)
	}

	for _, old := range before {
		candidates := remaining[old.name]
		if len(candidates) == 0 {
			changes = append(changes, Change{
				Kind: Removed, Category: category, Action: old.name, Before: old.Shortcuts(),
			})
			continue
		}
		current := candidates[0]
		remaining[old.name] = candidates[1:]
		if !old.Equal(current) {
			changes = append(changes, Change{
				Kind: Rebound, Category: category, Action: old.name,
				Before: old.Shortcuts(), After: current.Shortcuts(),
			})
		}
	}

	for _, a := range after {
		left := remaining[a.name]
		if len(left) == 0 {
			continue
		}
		remaining[a.name] = left[1:]
		changes = append(changes, Change{
			Kind: Added, Category: category, Action: a.name, After: left[0].Shortcuts(),
		})
	}

	return changes
}
