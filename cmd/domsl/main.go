// Command domsl expands the markup of .gox files into Go code.
//
// It writes one <name>.gox.go file next to each .gox source. Paths behave
// like Go patterns:
//
//	./...        every package below the current directory
//	./dir        only that directory
//	./dir/...    every package below dir
//	./file.gox   the package of that file
//
// The usual way to run it is a go:generate directive:
//
//	//go:generate go run domsl/cmd/domsl -dir .
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"go/importer"
	"go/token"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"domsl/internal/analyze"
	"domsl/internal/compile"
	"domsl/internal/config"
	"domsl/internal/gen"
	"domsl/internal/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

type flags struct {
	config  string
	dir     string
	watch   bool
	offline bool
	jobs    int
	verbose bool
	init    bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, []string, error) {
	fs := flag.NewFlagSet("domsl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.config, "config", "", "configuration file (defaults to domsl.yaml in the module root)")
	fs.StringVar(&f.dir, "dir", "", "only generate for this directory (non-recursive); useful with go:generate")
	fs.BoolVar(&f.watch, "watch", false, "regenerate when .gox files change")
	fs.BoolVar(&f.offline, "offline", false, "type-check from source without the go command")
	fs.IntVar(&f.jobs, "j", runtime.GOMAXPROCS(0), "number of directories compiled in parallel")
	fs.BoolVar(&f.verbose, "v", false, "log progress")
	fs.BoolVar(&f.init, "init", false, "write a default domsl.yaml to the module root and exit")

	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: domsl [flags] [paths...]")
		_, _ = fmt.Fprintln(stderr, "")
		_, _ = fmt.Fprintln(stderr, "Generates one *.gox.go file next to each *.gox source.")
		_, _ = fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if f.dir != "" && fs.NArg() != 0 {
		return nil, nil, errors.New("domsl: cannot use -dir with positional paths")
	}

	if f.jobs < 1 {
		return nil, nil, fmt.Errorf("domsl: -j must be at least 1, got %d", f.jobs)
	}

	return f, fs.Args(), nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	f, patterns, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	mod, err := config.FindModule(cwd)
	if err != nil {
		return fmt.Errorf("domsl: %w", err)
	}

	if f.init {
		return initConfig(mod, log)
	}

	cfg, err := loadConfig(mod, f.config)
	if err != nil {
		return err
	}

	if err := mod.CheckRuntime(cfg.Runtime); err != nil {
		log.Warn("runtime may not build", "err", err)
	}

	checker, err := newChecker(mod, cfg, f.offline)
	if err != nil {
		return err
	}

	c := compile.New(compile.Options{
		Runtime:      cfg.Runtime,
		Extension:    cfg.Extension,
		Schema:       schema.Default().WithGlobalAttributes(cfg.GlobalAttributes...),
		ContentModel: cfg.Mode(),
		Checker:      checker,
		Logger:       log,
	})

	var dirs []string
	if f.dir != "" {
		dir, err := filepath.Abs(f.dir)
		if err != nil {
			return err
		}

		dirs = []string{dir}
	} else {
		if len(patterns) == 0 {
			patterns = []string{"./..."}
		}

		dirs, err = collectDirs(cwd, patterns, cfg.Extension)
		if err != nil {
			return err
		}
	}

	err = generate(ctx, c, dirs, f.jobs, log)
	if !f.watch {
		return err
	}

	if err != nil {
		log.Error("generation failed", "err", err)
	}

	return watch(ctx, c, dirs, cfg.Extension, log)
}

func initConfig(mod *config.Module, log *slog.Logger) error {
	path := filepath.Join(mod.Root, config.FileName)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("domsl: %s already exists", path)
	}

	if err := config.WriteFile(config.Default(), path); err != nil {
		return err
	}

	log.Info("wrote config", "path", path)

	return nil
}

func loadConfig(mod *config.Module, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	return mod.FindConfig()
}

// newChecker returns the go/packages checker, or with offline a go/types
// checker that reads the runtime from the module or a directory
// replacement.
func newChecker(mod *config.Module, cfg *config.Config, offline bool) (analyze.Checker, error) {
	if !offline {
		return &analyze.PackagesChecker{}, nil
	}

	dir := mod.PackageDir(cfg.Runtime)
	if dir == "" {
		return nil, fmt.Errorf("domsl: -offline needs the runtime %s inside module %s or a directory replacement of its module", cfg.Runtime, mod.Path)
	}

	return &analyze.SourceChecker{
		Importer: &analyze.RuntimeImporter{
			Path:     cfg.Runtime,
			Dir:      dir,
			Fallback: importer.ForCompiler(token.NewFileSet(), "source", nil),
		},
	}, nil
}

// generate compiles dirs in parallel and writes the results. Every
// directory is attempted; the errors are joined.
func generate(ctx context.Context, c *compile.Compiler, dirs []string, jobs int, log *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var (
		mu   sync.Mutex
		errs []error
	)

	for _, dir := range dirs {
		g.Go(func() error {
			if err := generateDir(ctx, c, dir, log); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}

			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}

func generateDir(ctx context.Context, c *compile.Compiler, dir string, log *slog.Logger) error {
	res, err := c.CompileDir(ctx, dir)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		log.Warn(w.Message, "pos", w.Pos.String(), "code", w.Code)
	}

	written, err := gen.WriteFiles(res.Files, dir)
	if err != nil {
		return err
	}

	for _, name := range written {
		log.Info("wrote", "file", filepath.Join(dir, name))
	}

	return nil
}
