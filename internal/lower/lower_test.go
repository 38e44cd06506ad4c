package lower

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domsl/internal/check"
	"domsl/internal/diagnostic"
	"domsl/internal/dispatch"
	"domsl/internal/expand"
	"domsl/internal/markup"
)

const runtime = `package dom

type Node interface{ DOMNode() any }

type Element interface {
	Node
	SetAttribute(name, value string)
}

type HTMLSpanElement struct{ Element }

type Props struct{}
`

type env struct {
	pkg        *types.Package
	dispatcher *dispatch.Dispatcher
}

func newEnv(t *testing.T) env {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "dom.go", runtime, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("domsl/dom", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	node := pkg.Scope().Lookup("Node").Type().Underlying().(*types.Interface)

	return env{pkg: pkg, dispatcher: dispatch.New(node)}
}

func (e env) named(name string) types.Type {
	return e.pkg.Scope().Lookup(name).Type()
}

func invocation(t *testing.T, body string) (*token.FileSet, *expand.Invocation, *check.Result) {
	t.Helper()

	fset := token.NewFileSet()
	src := "package p\n\nvar _ = jsx!(doc => {" + body + "})\n"

	f, err := expand.Scan(fset, "p.gox", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Invocations, 1)

	inv := f.Invocations[0]

	res, err := check.Validate(fset, inv.Root, check.Options{})
	require.NoError(t, err)

	return fset, inv, res
}

var irOpts = cmp.Options{
	cmp.Comparer(func(a, b *markup.Expr) bool {
		if a == nil || b == nil {
			return a == b
		}

		return a.Src == b.Src && a.Braced == b.Braced
	}),
	cmpopts.IgnoreFields(dispatch.Decision{}, "Type", "Elem"),
}

func TestLower_Element(t *testing.T) {
	e := newEnv(t)
	fset, inv, res := invocation(t,
		`<div class="box" id={id} hidden>"Hi"{n}{items}<Card title="x" on={flag} wide/></div>`)

	require.Len(t, inv.Sites, 5)

	prog, err := Lower(fset, inv, res, []types.Type{
		types.Typ[types.String],
		types.Typ[types.UntypedString],
		types.Typ[types.Int],
		types.NewSlice(e.named("Node")),
		e.named("HTMLSpanElement"),
	}, e.dispatcher)
	require.NoError(t, err)

	want := &Program{
		Doc:  "doc",
		Cast: "HTMLDivElement",
		Root: &CreateElement{
			Tag: "div",
			Attrs: []*SetAttr{
				{Name: "class", Kind: ValueLiteral, Value: &markup.Expr{Src: `"box"`}},
				{Name: "id", Kind: ValueText, Value: &markup.Expr{Src: "id", Braced: true}, Text: dispatch.TextString},
				{Name: "hidden", Kind: ValueEmpty},
			},
			Children: []Expr{
				&Text{Literal: `"Hi"`},
				&Embed{
					Expr:     &markup.Expr{Src: "n", Braced: true},
					Decision: dispatch.Decision{Rule: dispatch.RuleText, Text: dispatch.TextInt},
				},
				&Embed{
					Expr:     &markup.Expr{Src: "items", Braced: true},
					Decision: dispatch.Decision{Rule: dispatch.RuleIterNode, Iter: dispatch.IterIndexed},
				},
				&Construct{
					Type: "Card",
					Fields: []*Field{
						{Name: "title", Kind: FieldLiteral, Value: &markup.Expr{Src: `"x"`}},
						{Name: "on", Kind: FieldExpr, Value: &markup.Expr{Src: "flag", Braced: true}},
						{Name: "wide", Kind: FieldBare},
					},
					SelfClosing: true,
				},
			},
		},
	}

	if diff := cmp.Diff(want, prog, irOpts); diff != "" {
		t.Errorf("Lower() mismatch (-want +got):\n%s\n%s", diff, spew.Sdump(prog))
	}
}

func TestLower_RootCast(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name  string
		body  string
		types []types.Type
		cast  string
	}{
		{"element", `<span/>`, nil, "HTMLSpanElement"},
		{"fragment", `<><span/></>`, nil, ""},
		{"embed", `{x}`, []types.Type{e.named("Node")}, ""},
		{"component", `<Card/>`, []types.Type{e.named("Props")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fset, inv, res := invocation(t, tt.body)

			prog, err := Lower(fset, inv, res, tt.types, e.dispatcher)
			require.NoError(t, err)
			assert.Equal(t, tt.cast, prog.Cast)
		})
	}
}

func TestLower_ComponentChildren(t *testing.T) {
	e := newEnv(t)
	fset, inv, res := invocation(t, `<ui.Card color="red">"Hi"<b/></ui.Card>`)

	prog, err := Lower(fset, inv, res, []types.Type{e.named("Node"), types.Typ[types.UntypedString]}, e.dispatcher)
	require.NoError(t, err)

	c, ok := prog.Root.(*Construct)
	require.True(t, ok)
	assert.Equal(t, "ui.Card", c.Type)
	assert.False(t, c.SelfClosing)
	require.Len(t, c.Children, 2)
	assert.IsType(t, &Text{}, c.Children[0])
	assert.IsType(t, &CreateElement{}, c.Children[1])
}

func TestLower_Errors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name    string
		body    string
		types   []types.Type
		code    string
		column  int
		message string
	}{
		{
			name:    "attribute without text form",
			body:    `<div title={tags}/>`,
			types:   []types.Type{types.NewSlice(types.Typ[types.String])},
			code:    diagnostic.CodeNoText,
			column:  34,
			message: "attribute 'title': cannot use attribute value of type []string: it is not a string, []byte, error, fmt.Stringer, bool or number",
		},
		{
			name:    "node as attribute",
			body:    `<div title={n}/>`,
			types:   []types.Type{e.named("Node")},
			code:    diagnostic.CodeNoText,
			column:  34,
			message: "attribute 'title': cannot use attribute value of type domsl/dom.Node: nodes cannot be attribute values",
		},
		{
			name:    "map child",
			body:    `<div>{m}</div>`,
			types:   []types.Type{types.NewMap(types.Typ[types.String], types.Typ[types.Int])},
			code:    diagnostic.CodeDispatch,
			column:  28,
			message: "cannot use embedded value of type map[string]int: maps are not supported because their iteration order is not deterministic; collect the values into a slice first",
		},
		{
			name:    "component rendering a non-node",
			body:    `<div><Card/></div>`,
			types:   []types.Type{e.named("Props")},
			code:    diagnostic.CodeComponent,
			column:  28,
			message: "component 'Card' cannot be used as a child: Render returns domsl/dom.Props, which is not a node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fset, inv, res := invocation(t, tt.body)

			_, err := Lower(fset, inv, res, tt.types, e.dispatcher)
			require.Error(t, err)

			d, ok := diagnostic.As(err)
			require.True(t, ok, "want a diagnostic, got %v", err)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, 3, d.Pos.Line)
			assert.Equal(t, tt.column, d.Pos.Column)
			assert.Equal(t, tt.message, d.Message)
		})
	}
}

func TestLower_SiteCountMismatch(t *testing.T) {
	e := newEnv(t)
	fset, inv, res := invocation(t, `<div>{a}{b}</div>`)

	_, err := Lower(fset, inv, res, []types.Type{types.Typ[types.Int]}, e.dispatcher)
	assert.EqualError(t, err, "invocation 0: got 1 site types for 2 sites")
}
