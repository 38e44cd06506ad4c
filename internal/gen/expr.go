package gen

import (
	"fmt"
	"strconv"
	"strings"

	"domsl/internal/dispatch"
	"domsl/internal/expand"
	"domsl/internal/lower"
	"domsl/internal/markup"
)

// Expander renders invocations as construction code.
type Expander struct {
	File  *expand.File
	Names Names
	// Programs holds the lowered invocations of File indexed by ID.
	Programs []*lower.Program

	strconv bool
}

// Render implements expand.Renderer.
func (x *Expander) Render(inv *expand.Invocation) (string, error) {
	if inv.ID >= len(x.Programs) || x.Programs[inv.ID] == nil {
		return "", fmt.Errorf("invocation %d was not lowered", inv.ID)
	}

	e := &emitter{x: x, inv: inv, doc: x.Programs[inv.ID].Doc}
	if err := e.program(x.Programs[inv.ID]); err != nil {
		return "", err
	}

	return e.b.String(), nil
}

// UsesStrconv reports whether rendered code refers to the strconv package.
func (x *Expander) UsesStrconv() bool {
	return x.strconv
}

type emitter struct {
	x   *Expander
	inv *expand.Invocation
	doc string
	b   strings.Builder
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.b, format, args...)
}

func (e *emitter) source(expr *markup.Expr) (string, error) {
	return e.x.File.ExprText(e.inv, expr, e.x.Render)
}

func (e *emitter) program(p *lower.Program) error {
	n := e.x.Names

	// A component root keeps the declared result type of its Render method.
	if c, ok := p.Root.(*lower.Construct); ok {
		return e.construct(c)
	}

	if p.Cast == "" {
		return e.expr(p.Root)
	}

	e.printf("%s{Element: %s(", n.qualify(p.Cast), n.qualify("MustElement"))

	if err := e.expr(p.Root); err != nil {
		return err
	}

	e.printf(")}")

	return nil
}

func (e *emitter) expr(x lower.Expr) error {
	n := e.x.Names

	switch x := x.(type) {
	case *lower.CreateElement:
		e.printf("func() %s {\n", n.qualify("Node"))
		e.printf("%s := %s.CreateElement(%s)\n", n.Node, e.doc, strconv.Quote(x.Tag))

		for _, a := range x.Attrs {
			value, err := e.attrValue(a)
			if err != nil {
				return err
			}

			e.printf("%s.SetAttribute(%s, %s)\n", n.Node, strconv.Quote(a.Name), value)
		}

		if err := e.appendChildren(n.Node, x.Children); err != nil {
			return err
		}

		e.printf("return %s\n}()", n.Node)
	case *lower.Fragment:
		e.printf("func() %s {\n", n.qualify("Node"))
		e.printf("%s := %s.CreateDocumentFragment()\n", n.Node, e.doc)

		if err := e.appendChildren(n.Node, x.Children); err != nil {
			return err
		}

		e.printf("return %s\n}()", n.Node)
	case *lower.Construct:
		e.printf("%s(", n.qualify("Node"))

		if err := e.construct(x); err != nil {
			return err
		}

		e.printf(")")
	case *lower.Text:
		e.printf("%s.CreateTextNode(%s)", e.doc, x.Literal)
	case *lower.Embed:
		return e.embed(x)
	default:
		return fmt.Errorf("unexpected expression %T", x)
	}

	return nil
}

func (e *emitter) appendChildren(parent string, children []lower.Expr) error {
	for _, c := range children {
		e.printf("%s.AppendChild(", parent)

		if err := e.expr(c); err != nil {
			return err
		}

		e.printf(")\n")
	}

	return nil
}

func (e *emitter) attrValue(a *lower.SetAttr) (string, error) {
	switch a.Kind {
	case lower.ValueLiteral:
		return a.Value.Src, nil
	case lower.ValueEmpty:
		return `""`, nil
	default:
		src, err := e.source(a.Value)
		if err != nil {
			return "", err
		}

		return e.text(a.Text, "("+src+")"), nil
	}
}

func (e *emitter) text(t dispatch.Text, operand string) string {
	if t.NeedsStrconv() {
		e.x.strconv = true
	}

	return t.Apply(operand)
}

// construct prints (Type{fields}).Render(doc, children). The literal is
// parenthesized so it can appear in if and for headers.
func (e *emitter) construct(c *lower.Construct) error {
	n := e.x.Names

	fields := make([]string, 0, len(c.Fields))

	for _, f := range c.Fields {
		var value string

		switch f.Kind {
		case lower.FieldBare:
			value = "true"
		case lower.FieldLiteral:
			value = f.Value.Src
		default:
			src, err := e.source(f.Value)
			if err != nil {
				return err
			}

			value = "(" + src + ")"
		}

		fields = append(fields, f.Name+": "+value)
	}

	e.printf("(%s{%s}).Render(%s, ", c.Type, strings.Join(fields, ", "), e.doc)

	if c.SelfClosing {
		e.printf("nil)")
		return nil
	}

	e.printf("[]%s{", n.qualify("Node"))

	for _, child := range c.Children {
		e.printf("\n")

		if err := e.expr(child); err != nil {
			return err
		}

		e.printf(",")
	}

	if len(c.Children) > 0 {
		e.printf("\n")
	}

	e.printf("})")

	return nil
}

// embed evaluates the expression once and places it by its rule.
func (e *emitter) embed(x *lower.Embed) error {
	n := e.x.Names
	dec := x.Decision

	src, err := e.source(x.Expr)
	if err != nil {
		return err
	}

	e.printf("func() %s {\n", n.qualify("Node"))
	e.printf("%s := (%s)\n", n.Tmp, src)

	switch dec.Rule {
	case dispatch.RuleNode:
		e.printf("return %s\n", n.Tmp)
	case dispatch.RuleString, dispatch.RuleText:
		e.printf("return %s.CreateTextNode(%s)\n", e.doc, e.text(dec.Text, n.Tmp))
	case dispatch.RuleIterNode, dispatch.RuleIterString, dispatch.RuleIterText:
		e.printf("%s := %s.CreateDocumentFragment()\n", n.Frag, e.doc)

		if dec.Iter == dispatch.IterSeq {
			e.printf("for %s := range %s {\n", n.Item, n.Tmp)
		} else {
			e.printf("for _, %s := range %s {\n", n.Item, n.Tmp)
		}

		if dec.Rule == dispatch.RuleIterNode {
			e.printf("%s.AppendChild(%s)\n", n.Frag, n.Item)
		} else {
			e.printf("%s.AppendChild(%s.CreateTextNode(%s))\n", n.Frag, e.doc, e.text(dec.Text, n.Item))
		}

		e.printf("}\nreturn %s\n", n.Frag)
	default:
		return fmt.Errorf("unexpected dispatch rule %s", dec.Rule)
	}

	e.printf("}()")

	return nil
}
