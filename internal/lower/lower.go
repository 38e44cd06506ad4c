package lower

import (
	"fmt"
	"go/token"
	"go/types"

	"domsl/internal/check"
	"domsl/internal/diagnostic"
	"domsl/internal/dispatch"
	"domsl/internal/expand"
	"domsl/internal/markup"
)

// Lower builds the program of inv. siteTypes holds the type of every site of
// the invocation, in the order of inv.Sites.
func Lower(fset *token.FileSet, inv *expand.Invocation, res *check.Result, siteTypes []types.Type, d *dispatch.Dispatcher) (*Program, error) {
	if len(siteTypes) != len(inv.Sites) {
		return nil, fmt.Errorf("invocation %d: got %d site types for %d sites", inv.ID, len(siteTypes), len(inv.Sites))
	}

	l := &lowerer{
		fset:       fset,
		dispatcher: d,
		exprs:      make(map[*markup.Expr]types.Type),
		components: make(map[*markup.Element]types.Type),
	}

	for i, site := range inv.Sites {
		if site.Kind == markup.SiteComponent {
			l.components[site.Element] = siteTypes[i]
		} else {
			l.exprs[site.Expr] = siteTypes[i]
		}
	}

	root, err := l.node(inv.Root, true)
	if err != nil {
		return nil, err
	}

	p := &Program{Doc: inv.Doc, Root: root}
	if _, ok := root.(*CreateElement); ok && res != nil {
		p.Cast = res.Cast
	}

	return p, nil
}

type lowerer struct {
	fset       *token.FileSet
	dispatcher *dispatch.Dispatcher
	exprs      map[*markup.Expr]types.Type
	components map[*markup.Element]types.Type
}

func (l *lowerer) errorf(code string, pos token.Pos, format string, args ...any) *diagnostic.Diagnostic {
	return diagnostic.Errorf(code, l.fset.Position(pos), format, args...)
}

func (l *lowerer) node(n markup.Node, root bool) (Expr, error) {
	switch n := n.(type) {
	case *markup.Element:
		if n.IsComponent() {
			return l.construct(n, root)
		}

		return l.element(n)
	case *markup.Fragment:
		children, err := l.children(n.Children)
		if err != nil {
			return nil, err
		}

		return &Fragment{Children: children}, nil
	case *markup.Embed:
		return l.embed(n)
	default:
		return nil, fmt.Errorf("unexpected markup node %T", n)
	}
}

func (l *lowerer) children(nodes []markup.Node) ([]Expr, error) {
	out := make([]Expr, 0, len(nodes))

	for _, c := range nodes {
		e, err := l.node(c, false)
		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	return out, nil
}

func (l *lowerer) element(el *markup.Element) (Expr, error) {
	ce := &CreateElement{Tag: el.Name}

	for _, a := range el.Attrs {
		set := &SetAttr{Name: a.Name, Value: a.Value}

		switch {
		case a.Value == nil:
			set.Kind = ValueEmpty
		case a.Value.IsStringLit():
			set.Kind = ValueLiteral
		default:
			text, err := l.dispatcher.ResolveText(l.exprs[a.Value])
			if err != nil {
				return nil, l.errorf(diagnostic.CodeNoText, a.Value.Pos, "attribute '%s': %v", a.Name, err)
			}

			set.Kind = ValueText
			set.Text = text
		}

		ce.Attrs = append(ce.Attrs, set)
	}

	children, err := l.children(el.Children)
	if err != nil {
		return nil, err
	}

	ce.Children = children

	return ce, nil
}

func (l *lowerer) construct(el *markup.Element, root bool) (Expr, error) {
	c := &Construct{Type: el.Name, SelfClosing: el.SelfClosing}

	for _, a := range el.Attrs {
		f := &Field{Name: a.Name, Value: a.Value}

		switch {
		case a.Value == nil:
			f.Kind = FieldBare
		case a.Value.Braced:
			f.Kind = FieldExpr
		default:
			f.Kind = FieldLiteral
		}

		c.Fields = append(c.Fields, f)
	}

	// Nested components are upcast to a node, so they must render one.
	if !root {
		t := l.components[el]
		if dec, err := l.dispatcher.Resolve(t); err != nil || dec.Rule != dispatch.RuleNode {
			return nil, l.errorf(diagnostic.CodeComponent, el.NamePos,
				"component '%s' cannot be used as a child: Render returns %s, which is not a node", el.Name, typeString(t))
		}
	}

	if el.SelfClosing {
		return c, nil
	}

	children, err := l.children(el.Children)
	if err != nil {
		return nil, err
	}

	c.Children = children

	return c, nil
}

func (l *lowerer) embed(e *markup.Embed) (Expr, error) {
	if e.Expr.IsStringLit() {
		return &Text{Literal: e.Expr.Src}, nil
	}

	dec, err := l.dispatcher.Resolve(l.exprs[e.Expr])
	if err != nil {
		return nil, l.errorf(diagnostic.CodeDispatch, e.Expr.Pos, "%v", err)
	}

	return &Embed{Expr: e.Expr, Decision: dec}, nil
}

func typeString(t types.Type) string {
	if t == nil {
		return "a value of unknown type"
	}

	return types.TypeString(t, nil)
}
