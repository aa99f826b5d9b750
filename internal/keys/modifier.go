package keys

// Modifier identifies one of the physical modifier keys.
type Modifier uint8

const (
	IsoLevel3Shift Modifier = iota
	IsoLevel5Shift
	LeftHyper
	RightHyper
	LeftSuper
	RightSuper
	LeftMeta
	RightMeta
	LeftControl
	RightControl
	LeftAlt
	RightAlt
	LeftShift
	RightShift

	modifierCount
)

// Precedence is the order in which modifiers are emitted in a canonical
// shortcut. It is never modified.
var Precedence = [modifierCount]Modifier{
	IsoLevel3Shift,
	IsoLevel5Shift,
	LeftHyper,
	RightHyper,
	LeftSuper,
	RightSuper,
	LeftMeta,
	RightMeta,
	LeftControl,
	RightControl,
	LeftAlt,
	RightAlt,
	LeftShift,
	RightShift,
}

var modifierNames = [modifierCount]string{
	IsoLevel3Shift: "IsoLevel3Shift",
	IsoLevel5Shift: "IsoLevel5Shift",
	LeftHyper:      "Hyper",
	RightHyper:     "RightHyper",
	LeftSuper:      "Super",
	RightSuper:     "RightSuper",
	LeftMeta:       "Meta",
	RightMeta:      "RightMeta",
	LeftControl:    "Ctrl",
	RightControl:   "RightCtrl",
	LeftAlt:        "Alt",
	RightAlt:       "RightAlt",
	LeftShift:      "Shift",
	RightShift:     "RightShift",
}

var modifierLabels = [modifierCount]string{
	IsoLevel3Shift: "Iso3",
	IsoLevel5Shift: "Iso5",
	LeftHyper:      "Hyp",
	RightHyper:     "Hyp",
	LeftSuper:      "⌘L",
	RightSuper:     "⌘R",
	LeftMeta:       "Meta",
	RightMeta:      "Meta",
	LeftControl:    "CTRL",
	RightControl:   "CTRL",
	LeftAlt:        "ALT",
	RightAlt:       "ALT",
	LeftShift:      "SHIFT",
	RightShift:     "SHIFT",
}

// Valid reports whether m is one of the fourteen known modifiers.
func (m Modifier) Valid() bool {
	return m < modifierCount
}

// String returns the name KDE uses for the modifier.
// Right-hand variants carry a "Right" prefix.
func (m Modifier) String() string {
	if !m.Valid() {
		return "Modifier(?)"
	}
	return modifierNames[m]
}

// Label returns the short keycap text for the modifier.
func (m Modifier) Label() string {
	if !m.Valid() {
		return "?"
	}
	return modifierLabels[m]
}

// rank returns the position of m in Precedence.
func (m Modifier) rank() int {
	for i, p := range Precedence {
		if p == m {
			return i
		}
	}
	return len(Precedence)
}
