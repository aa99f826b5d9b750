package keys

import (
	"slices"
	"strings"
)

// Shortcut is one canonical key combination. The zero value is not a valid
// shortcut; use NewShortcut or ParseField.
type Shortcut struct {
	tokens []Token
}

// Canonicalize reorders a binding's tokens into canonical form.
//
// Modifiers are moved to the front, deduplicated and sorted by Precedence.
// Non-modifier tokens keep their relative order. Unrecognized tokens are
// removed. Canonicalizing a canonical list returns an equal list.
func Canonicalize(tokens []Token) []Token {
	var present [modifierCount]bool
	rest := make([]Token, 0, len(tokens))

	for _, t := range tokens {
		switch {
		case !t.Recognized():
			continue
		case t.IsModifier():
			if m, _ := t.Modifier(); m.Valid() {
				present[m.rank()] = true
			}
		default:
			rest = append(rest, t)
		}
	}

	out := make([]Token, 0, len(rest)+len(Precedence))
	for i, m := range Precedence {
		if present[i] {
			out = append(out, Mod(m))
		}
	}
	return append(out, rest...)
}

// NewShortcut canonicalizes tokens into a Shortcut.
// It returns false when nothing survives canonicalization.
func NewShortcut(tokens ...Token) (Shortcut, bool) {
	canonical := Canonicalize(tokens)
	if len(canonical) == 0 {
		return Shortcut{}, false
	}
	return Shortcut{tokens: canonical}, true
}

// Tokens returns a copy of the shortcut's keys in canonical order.
func (s Shortcut) Tokens() []Token {
	return slices.Clone(s.tokens)
}

// Len returns the number of keys in the shortcut.
func (s Shortcut) Len() int {
	return len(s.tokens)
}

// Modifiers returns the modifier keys of the shortcut.
func (s Shortcut) Modifiers() []Modifier {
	var mods []Modifier
	for _, t := range s.tokens {
		if m, ok := t.Modifier(); ok {
			mods = append(mods, m)
		}
	}
	return mods
}

// UsesModifier reports whether the shortcut includes m.
func (s Shortcut) UsesModifier(m Modifier) bool {
	return slices.Contains(s.tokens, Mod(m))
}

// Contains reports whether the shortcut includes t.
func (s Shortcut) Contains(t Token) bool {
	return slices.Contains(s.tokens, t)
}

// Equal reports whether both shortcuts hold the same keys in the same order.
func (s Shortcut) Equal(other Shortcut) bool {
	return slices.Equal(s.tokens, other.tokens)
}

// String returns the KDE spelling of the shortcut, e.g. "Meta+Ctrl+F".
func (s Shortcut) String() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, string(keySeparator))
}

// Label returns the keycap labels of the shortcut separated by spaces.
func (s Shortcut) Label() string {
	parts := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		parts[i] = t.Label()
	}
	return strings.Join(parts, " ")
}

// FormatField joins shortcuts into a KDE shortcut field. An empty list
// formats as "none".
func FormatField(shortcuts []Shortcut) string {
	if len(shortcuts) == 0 {
		return noneLiteral
	}
	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		parts[i] = sc.String()
	}
	return strings.Join(parts, bindingSeparator)
}
