package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ErrNoModule is returned when no go.mod encloses a directory.
var ErrNoModule = errors.New("no go.mod found")

// Module is the Go module enclosing a directory.
type Module struct {
	// Root is the directory holding go.mod.
	Root string
	// Path is the module path.
	Path string
	// Requires lists the paths of required modules.
	Requires []string
	// Replaces maps replaced module paths to their local directories.
	Replaces map[string]string
}

// FindModule walks up from dir to the closest go.mod and parses it.
func FindModule(dir string) (*Module, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "go.mod")

		data, err := os.ReadFile(path)
		if err == nil {
			return parseModule(dir, path, data)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoModule
		}

		dir = parent
	}
}

func parseModule(root, path string, data []byte) (*Module, error) {
	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if f.Module == nil {
		return nil, fmt.Errorf("%s: missing module directive", path)
	}

	m := &Module{
		Root:     root,
		Path:     f.Module.Mod.Path,
		Replaces: make(map[string]string),
	}

	for _, r := range f.Require {
		m.Requires = append(m.Requires, r.Mod.Path)
	}

	for _, r := range f.Replace {
		// Only directory replacements have no version.
		if r.New.Version == "" {
			dir := r.New.Path
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(root, dir)
			}

			m.Replaces[r.Old.Path] = dir
		}
	}

	return m, nil
}

// Provides reports whether the package at importPath can come from the
// module itself or from one of its requirements.
func (m *Module) Provides(importPath string) bool {
	if within(importPath, m.Path) {
		return true
	}

	for _, r := range m.Requires {
		if within(importPath, r) {
			return true
		}
	}

	return false
}

// PackageDir returns the directory of importPath when it is in the module
// or in a directory replacement, and "" otherwise.
func (m *Module) PackageDir(importPath string) string {
	if within(importPath, m.Path) {
		return filepath.Join(m.Root, filepath.FromSlash(strings.TrimPrefix(importPath, m.Path)))
	}

	for old, dir := range m.Replaces {
		if within(importPath, old) {
			return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(importPath, old)))
		}
	}

	return ""
}

// CheckRuntime validates the runtime import path and reports whether the
// module can build code importing it.
func (m *Module) CheckRuntime(runtimePath string) error {
	if err := module.CheckImportPath(runtimePath); err != nil {
		return fmt.Errorf("invalid runtime import path: %w", err)
	}

	if !m.Provides(runtimePath) {
		return fmt.Errorf("module %s does not require the module of the runtime %s", m.Path, runtimePath)
	}

	return nil
}

func within(importPath, modPath string) bool {
	return importPath == modPath || strings.HasPrefix(importPath, modPath+"/")
}

// FindConfig returns the configuration of the module, or the defaults when
// it has no domsl.yaml.
func (m *Module) FindConfig() (*Config, error) {
	path := filepath.Join(m.Root, FileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return LoadFile(path)
}
