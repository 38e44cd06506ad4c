package analyze

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"
)

// collector extracts the probe calls of type-checked files.
type collector struct {
	fset        *token.FileSet
	info        *types.Info
	runtimePath string
	result      *Result
}

func newCollector(fset *token.FileSet, info *types.Info, runtimePath string) *collector {
	return &collector{
		fset:        fset,
		info:        info,
		runtimePath: runtimePath,
		result:      &Result{Sites: make(map[string]map[int][]types.Type)},
	}
}

// file collects the probe calls of f, which was checked as the probe at
// path.
func (c *collector) file(path string, f *ast.File) {
	sites := make(map[int][]types.Type)
	c.result.Sites[path] = sites

	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		fn := c.probeFunc(call.Fun)
		if fn == nil {
			return true
		}

		skip := 2 // doc, id
		if fn.Name() == ProbeComponentFunc {
			skip = 3 // root, doc, id
		}

		if len(call.Args) < skip {
			return true
		}

		id, ok := c.intValue(call.Args[skip-1])
		if !ok {
			return true
		}

		ts := make([]types.Type, 0, len(call.Args)-skip)
		for _, arg := range call.Args[skip:] {
			ts = append(ts, c.info.TypeOf(arg))
		}

		sites[id] = ts

		return true
	})

	if c.result.Node == nil {
		c.result.Node = c.nodeInterface(f)
	}
}

// probeFunc returns the runtime probe function called by fun, if any.
func (c *collector) probeFunc(fun ast.Expr) *types.Func {
	switch x := fun.(type) {
	case *ast.IndexExpr:
		fun = x.X
	case *ast.IndexListExpr:
		fun = x.X
	}

	sel, ok := ast.Unparen(fun).(*ast.SelectorExpr)
	if !ok {
		return nil
	}

	fn, ok := c.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != c.runtimePath {
		return nil
	}

	if fn.Name() != ProbeFunc && fn.Name() != ProbeComponentFunc {
		return nil
	}

	return fn
}

func (c *collector) intValue(e ast.Expr) (int, bool) {
	tv, ok := c.info.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.Int {
		return 0, false
	}

	v, ok := constant.Int64Val(tv.Value)

	return int(v), ok
}

// nodeInterface finds the runtime's Node interface through the imports
// of f.
func (c *collector) nodeInterface(f *ast.File) *types.Interface {
	for _, spec := range f.Imports {
		pkgName := c.info.PkgNameOf(spec)
		if pkgName == nil || pkgName.Imported().Path() != c.runtimePath {
			continue
		}

		obj := pkgName.Imported().Scope().Lookup("Node")
		if obj == nil {
			return nil
		}

		iface, _ := obj.Type().Underlying().(*types.Interface)

		return iface
	}

	return nil
}

// addError records err when it is a hard error reported in a .gox file.
func (c *collector) addError(err error) {
	terr, ok := err.(types.Error)
	if !ok || terr.Soft {
		return
	}

	pos := terr.Fset.Position(terr.Pos)
	if !inMarkupFile(pos.Filename) {
		return
	}

	c.result.Errors = append(c.result.Errors, Error{Pos: pos, Msg: terr.Msg})
}

// sortErrors orders errors by position.
func (c *collector) sortErrors() {
	sort.SliceStable(c.result.Errors, func(i, j int) bool {
		a, b := c.result.Errors[i].Pos, c.result.Errors[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Column < b.Column
	})
}

// inMarkupFile reports whether a position lies in a .gox file rather than
// in plain Go. Line directives in probes map positions back to .gox files.
func inMarkupFile(filename string) bool {
	return filename != "" && !strings.HasSuffix(filename, ".go")
}
