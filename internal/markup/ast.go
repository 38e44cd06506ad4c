package markup

import (
	"go/token"
	"strconv"

	"domsl/internal/common"
)

// Node is a markup node: *Element, *Fragment or *Embed.
type Node interface {
	Pos() token.Pos
	node()
}

// Element is <name attrs>children</name> or <name attrs/>.
type Element struct {
	Lt          token.Pos
	Name        string
	NamePos     token.Pos
	Attrs       []*Attr
	Children    []Node
	SelfClosing bool
}

// Fragment is <>children</>.
type Fragment struct {
	Lt       token.Pos
	Children []Node
}

// Embed is a host expression placed as a child.
type Embed struct {
	Expr *Expr
}

// Attr is name=value or a bare name.
type Attr struct {
	Name    string
	NamePos token.Pos
	// Value is nil for a bare attribute.
	Value *Expr
}

// Expr is a host expression, kept as raw source text.
type Expr struct {
	Src string
	Pos token.Pos
	// Braced is set for {expr}; otherwise the expression is the single
	// token of kind Tok.
	Braced bool
	Tok    token.Token
	// First and Last are the indexes of the first and the last token of the
	// expression in the token slice given to Parse.
	First, Last int
}

func (e *Element) Pos() token.Pos  { return e.Lt }
func (f *Fragment) Pos() token.Pos { return f.Lt }
func (e *Embed) Pos() token.Pos    { return e.Expr.Pos }

func (*Element) node()  {}
func (*Fragment) node() {}
func (*Embed) node()    {}

// IsComponent reports whether the element refers to a component.
func (e *Element) IsComponent() bool {
	return common.IsComponentName(e.Name)
}

// IsStringLit reports whether the expression is a quoted string literal
// written directly, e.g. class="box" or "Hello" as a child.
func (e *Expr) IsStringLit() bool {
	return !e.Braced && e.Tok == token.STRING
}

// StringValue returns the value of a string literal expression.
func (e *Expr) StringValue() (string, bool) {
	if !e.IsStringLit() {
		return "", false
	}

	s, err := strconv.Unquote(e.Src)

	return s, err == nil
}
