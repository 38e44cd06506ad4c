package match

import (
	"strings"
	"unicode"
)

// Normalize folds a markup name for fuzzy matching: lowercase, with the
// separators '-', '_', '.' and ' ' removed. "aria-label", "ariaLabel" and
// "ARIA_LABEL" all normalize to "arialabel".
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}
