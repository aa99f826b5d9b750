package keys

import (
	"strings"
	"unicode/utf8"
)

// KDE shortcut field syntax.
const (
	// bindingSeparator is the escaped tab between alternative bindings.
	bindingSeparator = `\t`
	keySeparator     = '+'
	// backslashEscape is how a literal backslash key is written.
	backslashEscape = `\\\\`
	noneLiteral     = "none"
)

// vocabulary maps lowercased KDE key names to tokens. Single characters are
// handled separately and never looked up here.
var vocabulary = func() map[string]Token {
	v := map[string]Token{
		"ctrl":    Mod(LeftControl),
		"control": Mod(LeftControl),
		"alt":     Mod(LeftAlt),
		"shift":   Mod(LeftShift),
		"super":   Mod(LeftSuper),
		"hyper":   Mod(LeftHyper),
		"meta":    Mod(LeftMeta),

		"up":       Key(KeyUp),
		"down":     Key(KeyDown),
		"left":     Key(KeyLeft),
		"right":    Key(KeyRight),
		"pgup":     Key(KeyPageUp),
		"pageup":   Key(KeyPageUp),
		"pgdown":   Key(KeyPageDown),
		"pagedown": Key(KeyPageDown),
		"home":     Key(KeyHome),
		"end":      Key(KeyEnd),
		"tab":      Key(KeyTab),
		"backtab":  Key(KeyBackTab),

		"esc":        Key(KeyEscape),
		"escape":     Key(KeyEscape),
		"del":        Key(KeyDelete),
		"delete":     Key(KeyDelete),
		"ins":        Key(KeyInsert),
		"insert":     Key(KeyInsert),
		"return":     Key(KeyEnter),
		"enter":      Key(KeyEnter),
		"backspace":  Key(KeyBackspace),
		"space":      Char(' '),
		"print":      Key(KeyPrintScreen),
		"num":        Key(KeyNumLock),
		"numlock":    Key(KeyNumLock),
		"capslock":   Key(KeyCapsLock),
		"scrolllock": Key(KeyScrollLock),
		"pause":      Key(KeyPause),
		"menu":       Key(KeyMenu),

		"media play":     MediaKey(MediaPlay),
		"media pause":    MediaKey(MediaPause),
		"media stop":     MediaKey(MediaStop),
		"media next":     MediaKey(MediaTrackNext),
		"media previous": MediaKey(MediaTrackPrevious),
		"volume up":      MediaKey(MediaRaiseVolume),
		"volume down":    MediaKey(MediaLowerVolume),
		"volume mute":    MediaKey(MediaMuteVolume),
	}
	for n := 1; n <= 12; n++ {
		v[strings.ToLower(F(n).String())] = F(n)
	}
	return v
}()

// ParseToken maps one KDE key name onto a Token. Names outside the
// vocabulary, including "none", yield an unrecognized token.
func ParseToken(s string) Token {
	if s == backslashEscape {
		return Char('\\')
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r)
	}
	if t, ok := vocabulary[strings.ToLower(s)]; ok {
		return t
	}
	return Token{}
}

// ParseField turns a KDE shortcut field into its alternative shortcuts in
// source order. Bindings that are "none", empty, or made only of
// unrecognized keys are skipped. ParseField never fails.
func ParseField(field string) []Shortcut {
	var shortcuts []Shortcut
	for _, binding := range splitBindings(field) {
		if sc, ok := NewShortcut(parseBinding(binding)...); ok {
			shortcuts = append(shortcuts, sc)
		}
	}
	return shortcuts
}

// Unrecognized returns the key names in field that are not part of the
// vocabulary, in source order. "none" is not reported.
func Unrecognized(field string) []string {
	var names []string
	for _, binding := range splitBindings(field) {
		for _, name := range splitKeys(binding) {
			if isNone(name) {
				continue
			}
			if !ParseToken(name).Recognized() {
				names = append(names, name)
			}
		}
	}
	return names
}

func parseBinding(binding string) []Token {
	names := splitKeys(binding)
	tokens := make([]Token, 0, len(names))
	for _, name := range names {
		if isNone(name) {
			continue
		}
		tokens = append(tokens, ParseToken(name))
	}
	return tokens
}

func isNone(name string) bool {
	return strings.EqualFold(name, noneLiteral)
}

// splitBindings splits a field on the escaped tab. A backslash escape is
// consumed as a unit so its last backslash never starts a separator.
func splitBindings(field string) []string {
	var bindings []string
	start := 0
	for i := 0; i < len(field); {
		switch {
		case strings.HasPrefix(field[i:], backslashEscape):
			i += len(backslashEscape)
		case strings.HasPrefix(field[i:], bindingSeparator):
			bindings = append(bindings, field[start:i])
			i += len(bindingSeparator)
			start = i
		default:
			i++
		}
	}
	return append(bindings, field[start:])
}

// splitKeys splits a binding on '+'. A '+' where a key name is expected is
// the plus key itself, so "Ctrl++" is Ctrl and '+'.
func splitKeys(binding string) []string {
	var names []string
	start := 0
	for i := 0; i < len(binding); i++ {
		if binding[i] != keySeparator {
			continue
		}
		if i == start {
			names = append(names, string(keySeparator))
			if i+1 < len(binding) && binding[i+1] == keySeparator {
				i++
			}
			start = i + 1
			continue
		}
		names = append(names, binding[start:i])
		start = i + 1
	}
	if start < len(binding) {
		names = append(names, binding[start:])
	}
	return names
}
