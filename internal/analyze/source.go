package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// SourceChecker type-checks the package with go/types over its source
// files, without the go command.
type SourceChecker struct {
	// Importer resolves imports. The default type-checks imported packages
	// from source.
	Importer types.Importer
	// Context selects the files of the package; nil means build.Default.
	Context *build.Context
}

// Check implements Checker.
func (sc *SourceChecker) Check(ctx context.Context, req *Request) (*Result, error) {
	fset := token.NewFileSet()

	skip := make(map[string]bool, len(req.Probes))
	for _, p := range req.Probes {
		skip[filepath.Base(p.Path)] = true
	}

	files, err := parseDir(fset, req.Dir, sc.buildContext(), skip)
	if err != nil {
		return nil, err
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Instances:  make(map[*ast.Ident]types.Instance),
	}

	c := newCollector(fset, info, req.RuntimePath)
	probes := make(map[*ast.File]string, len(req.Probes))

	for _, p := range req.Probes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := parser.ParseFile(fset, p.Path, p.Content, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			if list, ok := err.(scanner.ErrorList); ok {
				for _, e := range list {
					c.result.Errors = append(c.result.Errors, Error{Pos: e.Pos, Msg: e.Msg})
				}

				continue
			}

			return nil, fmt.Errorf("parsing probe %s: %w", p.Path, err)
		}

		probes[f] = p.Path
		files = append(files, f)
	}

	if len(c.result.Errors) > 0 {
		c.sortErrors()
		return c.result, nil
	}

	imp := sc.Importer
	if imp == nil {
		imp = importer.ForCompiler(token.NewFileSet(), "source", nil)
	}

	conf := &types.Config{
		Importer: imp,
		Error:    c.addError,
	}

	// Errors are collected through conf.Error.
	_, _ = conf.Check(req.Dir, fset, files, info)

	for _, f := range files {
		if path, ok := probes[f]; ok {
			c.file(path, f)
		}
	}

	c.sortErrors()

	return c.result, nil
}

func (sc *SourceChecker) buildContext() *build.Context {
	if sc.Context != nil {
		return sc.Context
	}

	return &build.Default
}

// parseDir parses the non-test Go files of dir that match the build
// context, except the ones named in skip.
func parseDir(fset *token.FileSet, dir string, bctx *build.Context, skip map[string]bool) ([]*ast.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || skip[name] {
			continue
		}

		ok, err := bctx.MatchFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", name, err)
		}

		if ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	files := make([]*ast.File, 0, len(names))

	for _, name := range names {
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		files = append(files, f)
	}

	return files, nil
}

// RuntimeImporter type-checks the runtime package from its source directory
// and delegates every other import to Fallback.
type RuntimeImporter struct {
	// Path is the import path of the runtime and Dir its directory.
	Path     string
	Dir      string
	Fallback types.Importer

	once sync.Once
	pkg  *types.Package
	err  error
}

// Import implements types.Importer.
func (r *RuntimeImporter) Import(path string) (*types.Package, error) {
	if path != r.Path {
		if r.Fallback == nil {
			return nil, fmt.Errorf("cannot import %q: only the runtime %q is available", path, r.Path)
		}

		return r.Fallback.Import(path)
	}

	r.once.Do(func() {
		r.pkg, r.err = r.load()
	})

	return r.pkg, r.err
}

func (r *RuntimeImporter) load() (*types.Package, error) {
	fset := token.NewFileSet()

	files, err := parseDir(fset, r.Dir, &build.Default, nil)
	if err != nil {
		return nil, err
	}

	var errs []error

	conf := &types.Config{
		Importer: r.Fallback,
		Error: func(err error) {
			errs = append(errs, err)
		},
	}

	pkg, _ := conf.Check(r.Path, fset, files, nil)
	if len(errs) > 0 {
		return nil, fmt.Errorf("type-checking runtime %s: %w", r.Path, errors.Join(errs...))
	}

	return pkg, nil
}
