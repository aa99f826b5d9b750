// Package keys defines the closed key vocabulary used by exabind keymaps and
// turns KDE shortcut fields into canonical key combinations.
//
// A shortcut field such as "Ctrl+Alt+Esc\tMeta+Alt+Down" is split into
// bindings on the two-character "\t" escape, each binding is split into
// tokens on '+', and every token is mapped onto a Token. Tokens outside the
// vocabulary are dropped rather than reported: unknown key names degrade
// gracefully while the surrounding grammar stays strict.
//
// Every Shortcut built by this package is canonical: modifiers come first,
// appear once, and follow the fixed precedence order in Precedence.
package keys
