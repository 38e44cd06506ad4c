package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// unformattedConstraint keeps the sidecar out of the package it sits in.
const unformattedConstraint = "//go:build ignore\n\n"

// UnformattedName returns the name of the sidecar holding the unformatted
// output of a .gox file, e.g. page.gox.unformatted.go.
func UnformattedName(goxName string) string {
	return goxName + ".unformatted.go"
}

// writeUnformatted stores code that failed to format next to the intended
// output. Errors are returned for the caller to ignore.
func writeUnformatted(dir, goxName string, content []byte) error {
	if dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	data := make([]byte, 0, len(unformattedConstraint)+len(content))
	data = append(data, unformattedConstraint...)
	data = append(data, content...)

	return os.WriteFile(filepath.Join(dir, UnformattedName(goxName)), data, filePerm)
}

// removeUnformatted deletes the sidecar left by an earlier failed run.
func removeUnformatted(dir, goxName string) error {
	if dir == "" {
		return nil
	}

	err := os.Remove(filepath.Join(dir, UnformattedName(goxName)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
