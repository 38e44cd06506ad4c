package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"domsl/internal/check"
	"domsl/internal/dispatch"
	"domsl/internal/expand"
	"domsl/internal/lower"
)

const runtimeFixture = `package dom

type Node interface{ DOMNode() any }

type Element interface {
	Node
	SetAttribute(name, value string)
}

type HTMLLIElement struct{ Element }
`

type fixture struct {
	t    *testing.T
	pkg  *types.Package
	disp *dispatch.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "dom.go", runtimeFixture, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("domsl/dom", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	node := pkg.Scope().Lookup("Node").Type().Underlying().(*types.Interface)

	return &fixture{t: t, pkg: pkg, disp: dispatch.New(node)}
}

func (fx *fixture) named(name string) types.Type {
	return fx.pkg.Scope().Lookup(name).Type()
}

// file wraps body in an invocation on line 3 of p.gox.
func (fx *fixture) file(body string) *expand.File {
	fx.t.Helper()

	src := "package p\n\nvar _ = jsx!(doc => {" + body + "})\n"

	f, err := expand.Scan(token.NewFileSet(), "p.gox", []byte(src))
	require.NoError(fx.t, err)

	return f
}

// lower lowers every invocation of f; siteTypes is indexed by invocation ID.
func (fx *fixture) lower(f *expand.File, siteTypes ...[]types.Type) ([]*lower.Program, map[int]string) {
	fx.t.Helper()

	progs := make([]*lower.Program, f.Count())
	casts := make(map[int]string)

	for _, inv := range f.All() {
		res, err := check.Validate(f.Fset, inv.Root, check.Options{})
		require.NoError(fx.t, err)

		var ts []types.Type
		if inv.ID < len(siteTypes) {
			ts = siteTypes[inv.ID]
		}

		prog, err := lower.Lower(f.Fset, inv, res, ts, fx.disp)
		require.NoError(fx.t, err)

		progs[inv.ID] = prog
		casts[inv.ID] = res.Cast
	}

	return progs, casts
}

// squash collapses all whitespace so expectations do not depend on the
// exact layout of the emitted code.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
