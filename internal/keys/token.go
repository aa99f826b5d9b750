package keys

import (
	"fmt"
	"unicode"
)

// Kind discriminates the variants of a Token.
type Kind uint8

const (
	// KindUnrecognized marks a token the tokenizer could not map. It never
	// appears in a Shortcut.
	KindUnrecognized Kind = iota
	KindChar
	KindModifier
	KindFunction
	KindNamed
	KindMedia
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindModifier:
		return "modifier"
	case KindFunction:
		return "function"
	case KindNamed:
		return "named"
	case KindMedia:
		return "media"
	default:
		return "unrecognized"
	}
}

// Named identifies a non-character key that has a name rather than a glyph.
type Named uint8

const (
	KeyUp Named = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyTab
	KeyBackTab
	KeyEscape
	KeyDelete
	KeyInsert
	KeyEnter
	KeyBackspace
	KeyPrintScreen
	KeyNumLock
	KeyCapsLock
	KeyScrollLock
	KeyPause
	KeyMenu

	namedCount
)

var namedNames = [namedCount]string{
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyPageUp:      "PgUp",
	KeyPageDown:    "PgDown",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyTab:         "Tab",
	KeyBackTab:     "Backtab",
	KeyEscape:      "Esc",
	KeyDelete:      "Del",
	KeyInsert:      "Ins",
	KeyEnter:       "Return",
	KeyBackspace:   "Backspace",
	KeyPrintScreen: "Print",
	KeyNumLock:     "NumLock",
	KeyCapsLock:    "CapsLock",
	KeyScrollLock:  "ScrollLock",
	KeyPause:       "Pause",
	KeyMenu:        "Menu",
}

var namedLabels = [namedCount]string{
	KeyUp:          "↑",
	KeyDown:        "↓",
	KeyLeft:        "←",
	KeyRight:       "→",
	KeyPageUp:      "PgUp",
	KeyPageDown:    "PgDn",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyTab:         "⇥",
	KeyBackTab:     "⇤",
	KeyEscape:      "ESC",
	KeyDelete:      "Del",
	KeyInsert:      "Ins",
	KeyEnter:       "⏎",
	KeyBackspace:   "⌫",
	KeyPrintScreen: "Prnt",
	KeyNumLock:     "NumLk",
	KeyCapsLock:    "CAPS",
	KeyScrollLock:  "ScrL",
	KeyPause:       "Paus",
	KeyMenu:        "Menu",
}

func (n Named) String() string {
	if n >= namedCount {
		return "Named(?)"
	}
	return namedNames[n]
}

// Media identifies a multimedia or volume key.
type Media uint8

const (
	MediaPlay Media = iota
	MediaPause
	MediaStop
	MediaTrackNext
	MediaTrackPrevious
	MediaRaiseVolume
	MediaLowerVolume
	MediaMuteVolume

	mediaCount
)

var mediaNames = [mediaCount]string{
	MediaPlay:          "Media Play",
	MediaPause:         "Media Pause",
	MediaStop:          "Media Stop",
	MediaTrackNext:     "Media Next",
	MediaTrackPrevious: "Media Previous",
	MediaRaiseVolume:   "Volume Up",
	MediaLowerVolume:   "Volume Down",
	MediaMuteVolume:    "Volume Mute",
}

var mediaLabels = [mediaCount]string{
	MediaPlay:          "▶",
	MediaPause:         "⏸",
	MediaStop:          "⏹",
	MediaTrackNext:     "⏭",
	MediaTrackPrevious: "⏮",
	MediaRaiseVolume:   "🔊",
	MediaLowerVolume:   "🔉",
	MediaMuteVolume:    "🔇",
}

func (m Media) String() string {
	if m >= mediaCount {
		return "Media(?)"
	}
	return mediaNames[m]
}

// Token is a single key identity. The zero value is an unrecognized token.
//
// Code holds the Modifier, Named or Media value, or the function key number,
// depending on Kind. Rune is only meaningful for KindChar. Tokens are
// comparable with ==.
type Token struct {
	Kind Kind
	Rune rune
	Code uint8
}

// Char returns a character key token. The rune is lowercased.
func Char(r rune) Token {
	return Token{Kind: KindChar, Rune: unicode.ToLower(r)}
}

// Mod returns a modifier key token.
func Mod(m Modifier) Token {
	return Token{Kind: KindModifier, Code: uint8(m)}
}

// F returns the function key token F(n).
func F(n int) Token {
	return Token{Kind: KindFunction, Code: uint8(n)}
}

// Key returns a named key token.
func Key(n Named) Token {
	return Token{Kind: KindNamed, Code: uint8(n)}
}

// MediaKey returns a media key token.
func MediaKey(m Media) Token {
	return Token{Kind: KindMedia, Code: uint8(m)}
}

// IsModifier reports whether t is a modifier key.
func (t Token) IsModifier() bool {
	return t.Kind == KindModifier
}

// Recognized reports whether t is part of the vocabulary.
func (t Token) Recognized() bool {
	return t.Kind != KindUnrecognized
}

// Modifier returns the modifier held by t.
func (t Token) Modifier() (Modifier, bool) {
	if t.Kind != KindModifier {
		return 0, false
	}
	return Modifier(t.Code), true
}

// String returns the KDE spelling of the token, e.g. "Ctrl", "F7", "Esc" or
// "A". Parsing the result yields t again for every token ParseField can
// produce.
func (t Token) String() string {
	switch t.Kind {
	case KindChar:
		switch t.Rune {
		case ' ':
			return "Space"
		case '\\':
			return `\\\\`
		}
		return string(unicode.ToUpper(t.Rune))
	case KindModifier:
		return Modifier(t.Code).String()
	case KindFunction:
		return fmt.Sprintf("F%d", t.Code)
	case KindNamed:
		return Named(t.Code).String()
	case KindMedia:
		return Media(t.Code).String()
	default:
		return "?"
	}
}

// Label returns the short keycap text used when drawing the token.
func (t Token) Label() string {
	switch t.Kind {
	case KindChar:
		if t.Rune == ' ' {
			return "␣"
		}
		return string(unicode.ToUpper(t.Rune))
	case KindModifier:
		return Modifier(t.Code).Label()
	case KindFunction:
		return fmt.Sprintf("F%d", t.Code)
	case KindNamed:
		if Named(t.Code) >= namedCount {
			return "?"
		}
		return namedLabels[t.Code]
	case KindMedia:
		if Media(t.Code) >= mediaCount {
			return "?"
		}
		return mediaLabels[t.Code]
	default:
		return "?"
	}
}
