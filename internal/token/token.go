// Package token names the normalised input tokens understood by the
// engine and the level catalog.
package token

import "unicode/utf8"

const (
	Prefix     = "prefix"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	Enter      = "Enter"
	Escape     = "Escape"
	Backspace  = "Backspace"
	RotateKey  = "Control+o"
	Space      = " "
)

var named = map[string]struct{}{
	Prefix:     {},
	ArrowUp:    {},
	ArrowDown:  {},
	ArrowLeft:  {},
	ArrowRight: {},
	Enter:      {},
	Escape:     {},
	Backspace:  {},
	RotateKey:  {},
}

// Valid reports whether tok is a named token or a single printable rune.
func Valid(tok string) bool {
	if _, ok := named[tok]; ok {
		return true
	}
	return IsRune(tok)
}

// IsRune reports whether tok is exactly one printable character.
func IsRune(tok string) bool {
	if utf8.RuneCountInString(tok) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return r != utf8.RuneError && r >= ' ' && r != 0x7f
}

// Digit returns the value of a single decimal digit token.
func Digit(tok string) (int, bool) {
	if len(tok) != 1 || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}
	return int(tok[0] - '0'), true
}

// Label renders a token for display in the status bar and echo lines.
func Label(tok string) string {
	switch tok {
	case Prefix:
		return "Ctrl-b"
	case Space:
		return "Space"
	case RotateKey:
		return "Ctrl-o"
	}
	return tok
}
