package keymap

import (
	"fmt"

	"github.com/gerunddev/exabind/internal/keys"
	"github.com/gerunddev/exabind/internal/log"
	"github.com/gerunddev/exabind/internal/parser"
)

// KDE is the name given to keymaps parsed from kglobalshortcutsrc.
const KDE = "KDE"

// CategoryMode selects how friendly names are attached to records.
type CategoryMode string

const (
	// CategoryPositional applies a friendly name to the records that follow
	// it, up to the next section header.
	CategoryPositional CategoryMode = "positional"
	// CategorySection applies the last friendly name of a section to every
	// record in that section.
	CategorySection CategoryMode = "section"
)

// Valid reports whether m is a known mode.
func (m CategoryMode) Valid() bool {
	return m == CategoryPositional || m == CategorySection
}

// Stats describes what the assembler kept and dropped.
type Stats struct {
	Records      int // shortcut records seen
	Actions      int // actions kept
	Unbound      int // records without a usable binding
	Unrecognized int // key names outside the vocabulary
}

type options struct {
	name  string
	mode  CategoryMode
	stats *Stats
}

// Option configures Parse.
type Option func(*options)

// WithName overrides the keymap name (default KDE).
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithCategoryMode selects the friendly name rule (default CategoryPositional).
func WithCategoryMode(mode CategoryMode) Option {
	return func(o *options) {
		if mode.Valid() {
			o.mode = mode
		}
	}
}

// WithStats stores assembly statistics in s.
func WithStats(s *Stats) Option {
	return func(o *options) { o.stats = s }
}

// Parse ingests a complete kglobalshortcutsrc document.
//
// Grammar violations fail the whole document with an error wrapping
// parser.ErrSyntax. Unknown keys, "none" bindings and actions left without
// any binding are dropped silently.
func Parse(input string, opts ...Option) (*KeyMap, error) {
	o := options{name: KDE, mode: CategoryPositional}
	for _, opt := range opts {
		opt(&o)
	}

	lines, err := parser.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}

	resolve := parser.Resolve
	if o.mode == CategorySection {
		resolve = parser.ResolveSections
	}
	entries, err := resolve(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}

	km, stats := Assemble(o.name, entries)
	if o.stats != nil {
		*o.stats = stats
	}

	log.Debug("assembled keymap",
		"name", o.name,
		"categories", len(km.categories),
		"actions", stats.Actions,
		"unbound", stats.Unbound,
		"unrecognized_keys", stats.Unrecognized)
	return km, nil
}

// Assemble folds resolved records into a KeyMap. The default field of each
// record is ignored and the label becomes the action name. Records whose
// shortcut field yields no binding contribute nothing. Sections that resolve
// to the same category share one bucket, in source order.
func Assemble(name string, entries []parser.Entry) (*KeyMap, Stats) {
	km := &KeyMap{name: name, categories: make(map[string][]Action)}
	stats := Stats{Records: len(entries)}

	for _, e := range entries {
		stats.Unrecognized += len(keys.Unrecognized(e.Record.Field))

		action, ok := NewAction(e.Record.Label, keys.ParseField(e.Record.Field)...)
		if !ok {
			stats.Unbound++
			continue
		}
		km.add(e.Category, action)
	}

	stats.Actions = km.actions
	return km, stats
}
