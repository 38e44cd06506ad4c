package dispatch

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `package dom

type Node interface{ DOMNode() any }

type Element interface {
	Node
	SetAttribute(name, value string)
}

type HTMLDivElement struct{ Element }

// Text is both a node and string-like.
type Text string

func (Text) DOMNode() any { return nil }

type Name string

type Level int

func (Level) String() string { return "" }

type Err struct{}

func (*Err) Error() string { return "" }

// Loud is an error and a Stringer; error wins like in fmt.
type Loud struct{}

func (Loud) Error() string  { return "" }
func (Loud) String() string { return "" }

type Bytes []byte

type Point struct{ X int }

type Seq func(yield func(Node) bool)

type Pairs func(yield func(string, int) bool)
`

type fixtureTypes struct {
	pkg  *types.Package
	node *types.Interface
}

func load(t *testing.T) fixtureTypes {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "dom.go", fixture, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/dom", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	node := pkg.Scope().Lookup("Node").Type().Underlying().(*types.Interface)

	return fixtureTypes{pkg: pkg, node: node}
}

func (f fixtureTypes) named(name string) types.Type {
	return f.pkg.Scope().Lookup(name).Type()
}

func seqOf(elem types.Type) types.Type {
	yield := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "v", elem)),
		types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.Bool])), false)

	return types.NewSignatureType(nil, nil, nil,
		types.NewTuple(types.NewVar(token.NoPos, nil, "yield", yield)), nil, false)
}

func TestResolve(t *testing.T) {
	fx := load(t)
	d := New(fx.node)

	node := fx.named("Node")
	div := fx.named("HTMLDivElement")

	tests := []struct {
		name string
		typ  types.Type
		rule Rule
		text Text
		iter Iter
	}{
		{"interface node", node, RuleNode, TextNone, IterNone},
		{"handle type", div, RuleNode, TextNone, IterNone},
		{"string", types.Typ[types.String], RuleString, TextString, IterNone},
		{"untyped string", types.Typ[types.UntypedString], RuleString, TextString, IterNone},
		{"named string", fx.named("Name"), RuleString, TextString, IterNone},
		{"bytes", types.NewSlice(types.Typ[types.Byte]), RuleString, TextString, IterNone},
		{"named bytes", fx.named("Bytes"), RuleString, TextString, IterNone},
		{"int", types.Typ[types.Int], RuleText, TextInt, IterNone},
		{"untyped int", types.Typ[types.UntypedInt], RuleText, TextInt, IterNone},
		{"int32", types.Typ[types.Rune], RuleText, TextInt, IterNone},
		{"rune", types.Universe.Lookup("rune").Type(), RuleText, TextRune, IterNone},
		{"untyped rune", types.Typ[types.UntypedRune], RuleText, TextRune, IterNone},
		{"rune slice", types.NewSlice(types.Universe.Lookup("rune").Type()), RuleIterText, TextRune, IterIndexed},
		{"uint8", types.Typ[types.Uint8], RuleText, TextUint, IterNone},
		{"uintptr", types.Typ[types.Uintptr], RuleText, TextUint, IterNone},
		{"bool", types.Typ[types.Bool], RuleText, TextBool, IterNone},
		{"float32", types.Typ[types.Float32], RuleText, TextFloat32, IterNone},
		{"float64", types.Typ[types.Float64], RuleText, TextFloat64, IterNone},
		{"complex64", types.Typ[types.Complex64], RuleText, TextComplex64, IterNone},
		{"complex128", types.Typ[types.Complex128], RuleText, TextComplex128, IterNone},
		{"stringer over int", fx.named("Level"), RuleText, TextStringer, IterNone},
		{"pointer error", types.NewPointer(fx.named("Err")), RuleText, TextError, IterNone},
		{"error interface", types.Universe.Lookup("error").Type(), RuleText, TextError, IterNone},
		{"error before stringer", fx.named("Loud"), RuleText, TextError, IterNone},
		{"node slice", types.NewSlice(node), RuleIterNode, TextNone, IterIndexed},
		{"div array", types.NewArray(div, 3), RuleIterNode, TextNone, IterIndexed},
		{"pointer to array", types.NewPointer(types.NewArray(node, 2)), RuleIterNode, TextNone, IterIndexed},
		{"named seq", fx.named("Seq"), RuleIterNode, TextNone, IterSeq},
		{"string slice", types.NewSlice(types.Typ[types.String]), RuleIterString, TextString, IterIndexed},
		{"bytes slice", types.NewSlice(types.NewSlice(types.Typ[types.Byte])), RuleIterString, TextString, IterIndexed},
		{"string seq", seqOf(types.Typ[types.String]), RuleIterString, TextString, IterSeq},
		{"int array", types.NewArray(types.Typ[types.Int], 3), RuleIterText, TextInt, IterIndexed},
		{"pointer to int array", types.NewPointer(types.NewArray(types.Typ[types.Int], 3)), RuleIterText, TextInt, IterIndexed},
		{"stringer slice", types.NewSlice(fx.named("Level")), RuleIterText, TextStringer, IterIndexed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := d.Resolve(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.rule, dec.Rule)
			assert.Equal(t, tt.text, dec.Text)
			assert.Equal(t, tt.iter, dec.Iter)
			assert.Same(t, tt.typ, dec.Type)
			assert.Equal(t, tt.rule.Iterable(), dec.Elem != nil)
		})
	}
}

func TestResolve_NodeWinsOverString(t *testing.T) {
	fx := load(t)

	dec, err := New(fx.node).Resolve(fx.named("Text"))
	require.NoError(t, err)
	assert.Equal(t, RuleNode, dec.Rule)
}

func TestResolve_IndependentOfDeclarationOrder(t *testing.T) {
	fx := load(t)

	reversed := slices.Clone(candidates)
	slices.Reverse(reversed)

	d := newWithRules(fx.node, reversed)

	for _, typ := range []types.Type{
		fx.named("Text"),
		types.NewSlice(fx.named("Text")),
		fx.named("Loud"),
		types.Typ[types.String],
	} {
		want, err := New(fx.node).Resolve(typ)
		require.NoError(t, err)

		got, err := d.Resolve(typ)
		require.NoError(t, err)
		assert.Equal(t, want.Rule, got.Rule, typ.String())
	}
}

func TestResolve_NoRule(t *testing.T) {
	fx := load(t)
	d := New(fx.node, WithQualifier(types.RelativeTo(fx.pkg)))

	tests := []struct {
		name    string
		typ     types.Type
		message string
	}{
		{"struct", fx.named("Point"),
			"cannot use embedded value of type Point: it is not a node, a string, []byte, error, fmt.Stringer, bool or number, nor a slice, array or iter.Seq of those"},
		{"map", types.NewMap(types.Typ[types.String], fx.named("Node")),
			"cannot use embedded value of type map[string]Node: maps are not supported because their iteration order is not deterministic; collect the values into a slice first"},
		{"chan", types.NewChan(types.SendRecv, fx.named("Node")),
			"cannot use embedded value of type chan Node: channels are not supported; collect the values into a slice first"},
		{"nested", types.NewSlice(types.NewSlice(fx.named("Node"))),
			"cannot use embedded value of type [][]Node: nested iterables are not supported; flatten the value first"},
		{"seq2", fx.named("Pairs"),
			"cannot use embedded value of type Pairs: it is not a node, a string, []byte, error, fmt.Stringer, bool or number, nor a slice, array or iter.Seq of those"},
		{"pointer to int", types.NewPointer(types.Typ[types.Int]),
			"cannot use embedded value of type *int: it is not a node, a string, []byte, error, fmt.Stringer, bool or number, nor a slice, array or iter.Seq of those"},
		{"nil", types.Typ[types.UntypedNil],
			"cannot use embedded value of type untyped nil: nil has no type to dispatch on"},
		{"invalid", types.Typ[types.Invalid],
			"cannot use embedded value of type invalid type: its type could not be determined"},
		{"unknown", nil,
			"cannot use embedded value of type invalid type: its type could not be determined"},
		{"tuple", types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.Int]), types.NewVar(token.NoPos, nil, "", types.Typ[types.Int])),
			"cannot use embedded value of type (int, int): an embedded expression must have a single value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Resolve(tt.typ)
			require.Error(t, err)

			var nr *NoRuleError
			require.ErrorAs(t, err, &nr)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestResolveText(t *testing.T) {
	fx := load(t)
	d := New(fx.node, WithQualifier(types.RelativeTo(fx.pkg)))

	text, err := d.ResolveText(types.Typ[types.Int64])
	require.NoError(t, err)
	assert.Equal(t, TextInt, text)

	text, err = d.ResolveText(fx.named("Name"))
	require.NoError(t, err)
	assert.Equal(t, TextString, text)

	// A string-like node is a string as far as attributes are concerned.
	text, err = d.ResolveText(fx.named("Text"))
	require.NoError(t, err)
	assert.Equal(t, TextString, text)

	_, err = d.ResolveText(fx.named("HTMLDivElement"))
	assert.EqualError(t, err, "cannot use attribute value of type HTMLDivElement: nodes cannot be attribute values")

	_, err = d.ResolveText(types.NewSlice(types.Typ[types.String]))
	assert.EqualError(t, err, "cannot use attribute value of type []string: it is not a string, []byte, error, fmt.Stringer, bool or number")
}

func TestText_Apply(t *testing.T) {
	tests := []struct {
		text     Text
		want     string
		strconvs bool
	}{
		{TextNone, "v", false},
		{TextString, "string(v)", false},
		{TextError, "v.Error()", false},
		{TextStringer, "v.String()", false},
		{TextRune, "string(rune(v))", false},
		{TextBool, "strconv.FormatBool(bool(v))", true},
		{TextInt, "strconv.FormatInt(int64(v), 10)", true},
		{TextUint, "strconv.FormatUint(uint64(v), 10)", true},
		{TextFloat32, "strconv.FormatFloat(float64(v), 'g', -1, 32)", true},
		{TextFloat64, "strconv.FormatFloat(float64(v), 'g', -1, 64)", true},
		{TextComplex64, "strconv.FormatComplex(complex128(v), 'g', -1, 64)", true},
		{TextComplex128, "strconv.FormatComplex(complex128(v), 'g', -1, 128)", true},
	}

	for _, tt := range tests {
		t.Run(tt.text.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.Apply("v"))
			assert.Equal(t, tt.strconvs, tt.text.NeedsStrconv())
		})
	}
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, "IterString", RuleIterString.String())
	assert.Equal(t, "Rule(9)", Rule(9).String())
}
