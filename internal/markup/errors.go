package markup

import (
	"fmt"
	"go/token"
)

// ErrorKind classifies parse errors.
type ErrorKind int

const (
	// UnexpectedEnd means the input ended inside a construct.
	UnexpectedEnd ErrorKind = iota
	// UnexpectedToken means a token cannot start or continue a construct.
	UnexpectedToken
	// UnexpectedItem means a well-formed item appeared where another one was
	// required, e.g. a mismatched closing tag.
	UnexpectedItem
)

// ParseError is a markup syntax error.
type ParseError struct {
	Kind ErrorKind
	Pos  token.Pos
	// Found is the source text of the offending token or item.
	Found string
	// Expected describes what was expected, if known.
	Expected string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEnd:
		if e.Expected != "" {
			return fmt.Sprintf("unexpected end of input, expected %s (forgot to close tag?)", e.Expected)
		}

		return "unexpected end of input (forgot to close tag?)"
	case UnexpectedItem:
		return fmt.Sprintf("expected %s, found `%s` instead", e.Expected, e.Found)
	default:
		if e.Expected != "" {
			return fmt.Sprintf("unexpected token `%s`, expected %s", e.Found, e.Expected)
		}

		return fmt.Sprintf("unexpected token `%s`", e.Found)
	}
}
