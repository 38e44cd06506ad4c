// Package check validates parsed markup against the HTML schema and decides
// the static type of an invocation.
package check

import (
	"fmt"
	"go/token"
	"strings"

	"domsl/internal/common"
	"domsl/internal/diagnostic"
	"domsl/internal/markup"
	"domsl/internal/schema"
)

// Mode selects how violations of the informational content rules are
// reported.
type Mode int

const (
	// Ignore does not look at content rules.
	Ignore Mode = iota
	// Warn reports violations as warnings.
	Warn
	// Error makes violations fatal.
	Error
)

// ParseMode parses "ignore", "warn" or "error". The empty string is Ignore.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Ignore, fmt.Errorf("unknown content model mode %q (want ignore, warn or error)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case Ignore:
		return "ignore"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Options configure validation.
type Options struct {
	// Schema defaults to schema.Default().
	Schema       *schema.Table
	ContentModel Mode
}

// Result is the outcome of a successful validation.
type Result struct {
	// Cast is the handle type of the root element in the dom runtime, e.g.
	// "HTMLDivElement", or "" when the root is not a known HTML element.
	Cast     string
	Warnings []*diagnostic.Diagnostic
}

type validator struct {
	fset   *token.FileSet
	opts   Options
	result *Result
}

// Validate checks every element of the tree in depth-first source order:
// the tag is looked up, then each attribute is checked, then the children
// are visited. The first error stops validation.
func Validate(fset *token.FileSet, root markup.Node, opts Options) (*Result, error) {
	if opts.Schema == nil {
		opts.Schema = schema.Default()
	}

	v := &validator{fset: fset, opts: opts, result: &Result{}}

	if err := v.node(root, nil); err != nil {
		return nil, err
	}

	if el, ok := root.(*markup.Element); ok && !el.IsComponent() {
		info, _ := opts.Schema.Lookup(el.Name)
		v.result.Cast = info.Type
	}

	return v.result, nil
}

func (v *validator) errorf(code string, pos token.Pos, format string, args ...any) *diagnostic.Diagnostic {
	return diagnostic.Errorf(code, v.fset.Position(pos), format, args...)
}

// node validates n. parent is the descriptor of the closest enclosing HTML
// element, or nil when unknown (top level, inside a component).
func (v *validator) node(n markup.Node, parent *schema.TagInfo) error {
	switch n := n.(type) {
	case *markup.Element:
		if n.IsComponent() {
			return v.component(n)
		}

		return v.element(n, parent)
	case *markup.Fragment:
		for _, c := range n.Children {
			if err := v.node(c, parent); err != nil {
				return err
			}
		}
	case *markup.Embed:
		if parent != nil && n.Expr.IsStringLit() {
			return v.content(parent, nil, n.Pos())
		}
	}

	return nil
}

func (v *validator) element(el *markup.Element, parent *schema.TagInfo) error {
	table := v.opts.Schema

	info, ok := table.Lookup(el.Name)
	if !ok {
		return v.errorf(diagnostic.CodeUnknownTag, el.NamePos,
			"unknown HTML tag '<%s>' (maybe you meant to capitalize it to call a component?)", el.Name).
			WithSuggestions(table.Suggest(el.Name))
	}

	for _, a := range el.Attrs {
		if !table.CheckAttribute(info, a.Name) {
			return v.errorf(diagnostic.CodeInvalidAttribute, a.NamePos,
				"attribute '%s' is not valid on HTML tag '<%s>'", a.Name, el.Name).
				WithSuggestions(table.SuggestAttribute(info, a.Name))
		}
	}

	if parent != nil {
		if err := v.content(parent, info, el.NamePos); err != nil {
			return err
		}
	}

	for _, c := range el.Children {
		if err := v.node(c, info); err != nil {
			return err
		}
	}

	return nil
}

func (v *validator) component(el *markup.Element) error {
	seen := make(map[string]bool, len(el.Attrs))

	for _, a := range el.Attrs {
		if !common.IsIdent(a.Name) {
			return v.errorf(diagnostic.CodeInvalidAttribute, a.NamePos,
				"attribute '%s' cannot be passed to component '%s': component attributes are struct fields and must be Go identifiers",
				a.Name, el.Name)
		}

		if seen[a.Name] {
			return v.errorf(diagnostic.CodeInvalidAttribute, a.NamePos,
				"attribute '%s' is set twice on component '%s'", a.Name, el.Name)
		}

		seen[a.Name] = true
	}

	for _, c := range el.Children {
		if err := v.node(c, nil); err != nil {
			return err
		}
	}

	return nil
}

// content applies the child rules of parent to child (nil for text).
func (v *validator) content(parent, child *schema.TagInfo, pos token.Pos) error {
	if v.opts.ContentModel == Ignore || v.opts.Schema.AllowsChild(parent, child) {
		return nil
	}

	what := "text"
	if child != nil {
		what = "<" + child.Name + ">"
	}

	allowed := "nothing"
	if !parent.Void() {
		rules := make([]string, len(parent.Children))
		for i, r := range parent.Children {
			rules[i] = r.String()
		}

		allowed = strings.Join(rules, ", ")
	}

	d := v.errorf(diagnostic.CodeContentModel, pos,
		"%s is not allowed inside <%s> (accepts %s)", what, parent.Name, allowed)

	if v.opts.ContentModel == Error {
		return d
	}

	d.Severity = diagnostic.DiagnosticWarning
	v.result.Warnings = append(v.result.Warnings, d)

	return nil
}
