package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// collectDirs resolves patterns to the sorted directories holding markup
// files. A file pattern selects its directory: the files of a package are
// type-checked together.
func collectDirs(cwd string, patterns []string, ext string) ([]string, error) {
	seen := map[string]bool{}

	var out []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}

	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if pat == "" {
			continue
		}

		// Recursive pattern: <dir>/...
		if base, ok := strings.CutSuffix(pat, "..."); ok && (base == "" || strings.HasSuffix(base, "/")) {
			base = strings.TrimSuffix(base, "/")
			if base == "" {
				base = "."
			}

			dir, err := absolute(cwd, base)
			if err != nil {
				return nil, err
			}

			if err := walkMarkup(dir, ext, add); err != nil {
				return nil, err
			}

			continue
		}

		target, err := absolute(cwd, pat)
		if err != nil {
			return nil, err
		}

		st, err := os.Stat(target)
		if err != nil {
			return nil, err
		}

		if st.IsDir() {
			ok, err := hasMarkup(target, ext)
			if err != nil {
				return nil, err
			}

			if ok {
				add(target)
			}

			continue
		}

		if !strings.HasSuffix(target, ext) {
			return nil, fmt.Errorf("domsl: not a %s file: %s", ext, target)
		}

		add(filepath.Dir(target))
	}

	slices.Sort(out)

	return out, nil
}

func absolute(cwd, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	return filepath.Abs(path)
}

func isMarkup(name, ext string) bool {
	return strings.HasSuffix(name, ext) && !strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}

func hasMarkup(dir, ext string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	for _, e := range entries {
		if !e.IsDir() && isMarkup(e.Name(), ext) {
			return true, nil
		}
	}

	return false, nil
}

// skipDir reports whether the walk must not enter a directory, like the go
// command ignores them.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func walkMarkup(root, ext string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if de.IsDir() {
			if path != root && skipDir(de.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if isMarkup(de.Name(), ext) {
			add(filepath.Dir(path))
		}

		return nil
	})
}
