package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"domsl/internal/common"
)

// Diagnostic codes.
const (
	CodeSyntax           = "syntax"
	CodeUnknownTag       = "unknown-tag"
	CodeInvalidAttribute = "invalid-attribute"
	CodeContentModel     = "content-model"
	CodeComponent        = "component"
	CodeDispatch         = "dispatch"
	CodeNoText           = "no-text"
	CodeTypeCheck        = "type-check"
)

// Diagnostics holds the warnings and errors of a compilation.
type Diagnostics struct {
	Errors   []*Diagnostic
	Warnings []*Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Pos is the position of the offending construct.
	Pos token.Position
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Errorf creates an error diagnostic.
func Errorf(code string, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Warningf creates a warning diagnostic.
func Warningf(code string, pos token.Position, format string, args ...any) *Diagnostic {
	d := Errorf(code, pos, format, args...)
	d.Severity = DiagnosticWarning

	return d
}

// WithSuggestions returns d with the non-empty suggestions attached.
func (d *Diagnostic) WithSuggestions(s ...string) *Diagnostic {
	for _, v := range s {
		if v != "" {
			d.Suggestions = append(d.Suggestions, v)
		}
	}

	return d
}

// Error implements error.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String returns "file:line:col: message (did you mean x?)".
func (d *Diagnostic) String() string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}

	if d.Severity == DiagnosticWarning {
		b.WriteString("warning: ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(d.Suggestions, " or "))
		b.WriteString("?)")
	}

	return b.String()
}

// Add records d as an error or a warning depending on its severity.
func (ds *Diagnostics) Add(d *Diagnostic) {
	if d.Severity == DiagnosticError {
		ds.Errors = append(ds.Errors, d)
		return
	}

	ds.Warnings = append(ds.Warnings, d)
}

// HasErrors returns true if there are any error diagnostics.
func (ds *Diagnostics) HasErrors() bool {
	return len(ds.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (ds *Diagnostics) Merge(other Diagnostics) {
	ds.Errors = append(ds.Errors, other.Errors...)
	ds.Warnings = append(ds.Warnings, other.Warnings...)
}

// Err returns a combined error from all error diagnostics, or nil.
func (ds *Diagnostics) Err() error {
	if !ds.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(ds.Errors))
	for _, e := range ds.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// As reports whether err is or wraps a Diagnostic and returns it.
func As(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}

	return nil, false
}
