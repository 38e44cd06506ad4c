package compile

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"domsl/internal/analyze"
	"domsl/internal/check"
	"domsl/internal/component"
	"domsl/internal/diagnostic"
	"domsl/internal/dispatch"
	"domsl/internal/expand"
	"domsl/internal/gen"
	"domsl/internal/lower"
	"domsl/internal/schema"
)

// Default option values.
const (
	DefaultRuntime   = "domsl/dom"
	DefaultExtension = ".gox"
)

// Options configure a Compiler.
type Options struct {
	// Runtime is the import path of the dom runtime.
	Runtime string
	// Extension selects the markup source files of a directory.
	Extension string
	// Schema defaults to schema.Default().
	Schema       *schema.Table
	ContentModel check.Mode
	// Checker defaults to an analyze.PackagesChecker.
	Checker analyze.Checker
	Logger  *slog.Logger
	// DebugDir receives the unformatted output of files that fail to
	// format. It defaults to the package directory.
	DebugDir string
}

// Compiler compiles .gox files.
type Compiler struct {
	opts Options
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}

	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}

	if opts.Schema == nil {
		opts.Schema = schema.Default()
	}

	if opts.Checker == nil {
		opts.Checker = &analyze.PackagesChecker{}
	}

	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Compiler{opts: opts}
}

// Result is the output of a compilation.
type Result struct {
	// Files holds one generated file per source file, in name order.
	Files    []gen.GeneratedFile
	Warnings []*diagnostic.Diagnostic
}

// Source is a .gox file.
type Source struct {
	// Name is the base name of the file.
	Name    string
	Content []byte
}

// CompileDir compiles every .gox file of dir. Nothing is written; the
// caller decides what to do with the result.
func (c *Compiler) CompileDir(ctx context.Context, dir string) (*Result, error) {
	sources, err := c.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	return c.Compile(ctx, dir, sources)
}

// ReadDir reads the markup source files of dir in name order. Files whose
// name starts with "." or "_" are ignored, like the go command does.
func (c *Compiler) ReadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var sources []Source

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, c.opts.Extension) ||
			strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		sources = append(sources, Source{Name: name, Content: data})
	}

	return sources, nil
}

// CompileSource compiles a single file of the package in dir.
func (c *Compiler) CompileSource(ctx context.Context, dir, name string, src []byte) (*gen.GeneratedFile, []*diagnostic.Diagnostic, error) {
	res, err := c.Compile(ctx, dir, []Source{{Name: name, Content: src}})
	if err != nil {
		return nil, nil, err
	}

	return &res.Files[0], res.Warnings, nil
}

// Compile compiles the given files of the package in dir. The files are
// type-checked together with the Go files of dir; generated files standing
// for the sources are replaced by the probes.
func (c *Compiler) Compile(ctx context.Context, dir string, sources []Source) (*Result, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	sources = slices.Clone(sources)
	slices.SortFunc(sources, func(a, b Source) int {
		return strings.Compare(a.Name, b.Name)
	})

	log := c.opts.Logger.With("dir", dir)
	res := &Result{}
	units := make([]*unit, 0, len(sources))

	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u, err := c.prepare(dir, s)
		if err != nil {
			return nil, err
		}

		log.Debug("scanned file", "file", s.Name, "invocations", u.file.Count(), "components", len(u.decls))

		res.Warnings = append(res.Warnings, u.warnings...)
		units = append(units, u)
	}

	if len(units) == 0 {
		return res, nil
	}

	req := &analyze.Request{Dir: dir, RuntimePath: c.opts.Runtime}
	for _, u := range units {
		req.Probes = append(req.Probes, u.probe)
	}

	checked, err := c.opts.Checker.Check(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("type-checking %s: %w", dir, err)
	}

	if len(checked.Errors) > 0 {
		e := checked.Errors[0]
		return nil, diagnostic.Errorf(diagnostic.CodeTypeCheck, e.Pos, "%s", e.Msg)
	}

	if checked.Node == nil && slices.ContainsFunc(units, func(u *unit) bool { return u.file.Count() > 0 }) {
		return nil, fmt.Errorf("runtime %s does not declare a Node interface", c.opts.Runtime)
	}

	d := dispatch.New(checked.Node, dispatch.WithQualifier(packageName))

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := c.emit(u, checked, d)
		if err != nil {
			return nil, err
		}

		log.Debug("expanded file", "file", u.name, "output", out.Filename)

		res.Files = append(res.Files, *out)
	}

	return res, nil
}

func packageName(p *types.Package) string {
	return p.Name()
}

// unit is one file between the two passes.
type unit struct {
	name     string
	fset     *token.FileSet
	file     *expand.File
	imp      expand.Import
	names    gen.Names
	checks   []*check.Result
	decls    []*component.Decl
	probe    analyze.Probe
	warnings []*diagnostic.Diagnostic
}

// prepare scans and validates a file and builds its probe.
func (c *Compiler) prepare(dir string, s Source) (*unit, error) {
	path := filepath.Join(dir, s.Name)

	imp, err := expand.RuntimeImport(path, s.Content, c.opts.Runtime)
	if err != nil {
		return nil, syntaxError(err)
	}

	u := &unit{name: s.Name, fset: token.NewFileSet(), imp: imp, names: gen.DefaultNames(imp.Name)}

	u.file, err = expand.Scan(u.fset, path, s.Content)
	if err != nil {
		return nil, err
	}

	opts := check.Options{Schema: c.opts.Schema, ContentModel: c.opts.ContentModel}
	casts := make(map[int]string, u.file.Count())

	for _, inv := range u.file.All() {
		r, err := check.Validate(u.fset, inv.Root, opts)
		if err != nil {
			return nil, err
		}

		u.checks = append(u.checks, r)
		u.warnings = append(u.warnings, r.Warnings...)
		casts[inv.ID] = r.Cast
	}

	prober := &gen.Prober{File: u.file, Names: u.names, Casts: casts}

	src, err := u.file.Rewrite(prober.Render)
	if err != nil {
		return nil, err
	}

	// Component declarations are found on the probe, whose line directives
	// give their errors positions in the .gox file.
	probeFset := token.NewFileSet()

	f, err := parser.ParseFile(probeFset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxError(err)
	}

	u.decls, err = component.Find(probeFset, f)
	if err != nil {
		return nil, err
	}

	// A file without markup or components must not import the runtime.
	if u.file.Count() == 0 && len(u.decls) == 0 {
		u.imp.Missing = false
	}

	src, err = gen.InsertComponents(probeFset, src, u.decls, u.names, true)
	if err != nil {
		return nil, err
	}

	src, err = gen.ProbePrologue(path, src, u.imp)
	if err != nil {
		return nil, err
	}

	u.probe = analyze.Probe{
		Path:    filepath.Join(dir, gen.OutputName(s.Name)),
		Source:  path,
		Content: src,
	}

	return u, nil
}

// emit lowers the invocations of u with the checked types and assembles the
// generated file.
func (c *Compiler) emit(u *unit, res *analyze.Result, d *dispatch.Dispatcher) (*gen.GeneratedFile, error) {
	programs := make([]*lower.Program, u.file.Count())

	for _, inv := range u.file.All() {
		siteTypes, ok := res.SiteTypes(u.probe.Path, inv.ID)
		if !ok {
			return nil, fmt.Errorf("%s: invocation %d was not type-checked", u.fset.Position(inv.Pos), inv.ID)
		}

		p, err := lower.Lower(u.fset, inv, u.checks[inv.ID], siteTypes, d)
		if err != nil {
			return nil, err
		}

		programs[inv.ID] = p
	}

	x := &gen.Expander{File: u.file, Names: u.names, Programs: programs}

	src, err := u.file.Rewrite(x.Render)
	if err != nil {
		return nil, err
	}

	if len(u.decls) > 0 {
		fset := token.NewFileSet()

		f, err := parser.ParseFile(fset, u.probe.Source, src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing expanded %s: %w", u.name, err)
		}

		decls, err := component.Find(fset, f)
		if err != nil {
			return nil, err
		}

		src, err = gen.InsertComponents(fset, src, decls, u.names, false)
		if err != nil {
			return nil, err
		}
	}

	debugDir := c.opts.DebugDir
	if debugDir == "" {
		debugDir = filepath.Dir(u.probe.Path)
	}

	content, err := gen.Format(u.probe.Source, src, gen.FileOptions{
		Runtime:  u.imp,
		Strconv:  x.UsesStrconv(),
		DebugDir: debugDir,
	})
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", gen.OutputName(u.name), err)
	}

	return &gen.GeneratedFile{
		Filename: gen.OutputName(u.name),
		Source:   u.name,
		Content:  content,
	}, nil
}

// syntaxError turns the first error of a Go parser error list into a
// diagnostic.
func syntaxError(err error) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return diagnostic.Errorf(diagnostic.CodeSyntax, list[0].Pos, "%s", list[0].Msg)
	}

	return err
}
