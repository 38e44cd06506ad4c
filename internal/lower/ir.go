// Package lower turns a validated markup tree into an expression tree of DOM
// construction operations, with every embedded value already dispatched.
package lower

import (
	"domsl/internal/dispatch"
	"domsl/internal/markup"
)

// Program is the lowered form of one invocation.
type Program struct {
	// Doc is the document identifier named by the invocation.
	Doc  string
	Root Expr
	// Cast is the dom handle type the root is narrowed to, or "".
	Cast string
}

// Expr is a construction operation: *CreateElement, *Fragment, *Construct,
// *Text or *Embed. Every Expr evaluates to a node.
type Expr interface {
	expr()
}

// CreateElement creates an HTML element, sets its attributes and appends
// its children, all in source order.
type CreateElement struct {
	Tag      string
	Attrs    []*SetAttr
	Children []Expr
}

// Fragment collects its children in a document fragment.
type Fragment struct {
	Children []Expr
}

// Construct builds a component value and renders it.
type Construct struct {
	// Type is the component type as written, e.g. "Card" or "ui.Card".
	Type   string
	Fields []*Field
	// Children is nil for a self-closing component.
	Children []Expr
	// SelfClosing components pass a nil children slice.
	SelfClosing bool
}

// Text is a text node from a string literal.
type Text struct {
	// Literal is the quoted literal as written.
	Literal string
}

// Embed is an embedded host expression and the rule that places it.
type Embed struct {
	Expr     *markup.Expr
	Decision dispatch.Decision
}

func (*CreateElement) expr() {}
func (*Fragment) expr()      {}
func (*Construct) expr()     {}
func (*Text) expr()          {}
func (*Embed) expr()         {}

// ValueKind classifies attribute values.
type ValueKind int

const (
	// ValueLiteral is a quoted string literal, used verbatim.
	ValueLiteral ValueKind = iota
	// ValueEmpty is a bare HTML attribute, set to the empty string.
	ValueEmpty
	// ValueText is a computed value converted with Text.
	ValueText
)

// SetAttr sets one attribute of an element.
type SetAttr struct {
	Name  string
	Kind  ValueKind
	Value *markup.Expr
	Text  dispatch.Text
}

// FieldKind classifies component attribute values.
type FieldKind int

const (
	// FieldLiteral is an unbraced literal or identifier, copied verbatim.
	FieldLiteral FieldKind = iota
	// FieldExpr is a braced expression, parenthesized.
	FieldExpr
	// FieldBare is a bare attribute, set to true.
	FieldBare
)

// Field initializes one field of a component.
type Field struct {
	Name  string
	Kind  FieldKind
	Value *markup.Expr
}
