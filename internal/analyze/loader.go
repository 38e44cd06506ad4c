package analyze

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// PackagesChecker loads the package with golang.org/x/tools/go/packages,
// with the probes overlaid on the generated files.
type PackagesChecker struct {
	// Env is the environment of the go command; nil means os.Environ().
	Env []string
	// BuildFlags are passed to the go command, e.g. -tags.
	BuildFlags []string
}

// Check implements Checker.
func (pc *PackagesChecker) Check(ctx context.Context, req *Request) (*Result, error) {
	overlay := make(map[string][]byte, len(req.Probes))
	for _, p := range req.Probes {
		overlay[filepath.Clean(p.Path)] = p.Content
	}

	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        req.Dir,
		Env:        pc.Env,
		BuildFlags: pc.BuildFlags,
		Overlay:    overlay,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", req.Dir, len(pkgs))
	}

	pkg := pkgs[0]

	// Type errors are sorted out below; anything else means the package
	// could not be loaded at all. The go command repeats type errors of
	// the package itself as a list error, which is dropped when the type
	// checker has its own positioned version.
	var errs []error

	for _, e := range pkg.Errors {
		switch {
		case e.Kind == packages.TypeError:
		case e.Kind == packages.ListError && len(pkg.TypeErrors) > 0:
		default:
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	c := newCollector(pkg.Fset, pkg.TypesInfo, req.RuntimePath)

	for _, e := range pkg.TypeErrors {
		c.addError(e)
	}

	for _, f := range pkg.Syntax {
		name := filepath.Clean(pkg.Fset.File(f.FileStart).Name())
		if _, ok := overlay[name]; ok {
			c.file(name, f)
		}
	}

	c.sortErrors()

	return c.result, nil
}
