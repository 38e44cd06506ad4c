package common

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// IsComponentName reports whether a markup element name refers to a
// component instead of an HTML tag. Qualified names (ui.Card) are judged by
// their last segment.
func IsComponentName(name string) bool {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return false
	}

	return !unicode.IsLower(r)
}

// IsIdent reports whether s is a valid, non-blank Go identifier that is not
// a keyword.
func IsIdent(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}
