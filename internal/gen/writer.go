package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "page.gox.go").
	Filename string
	// Source is the name of the .gox file it was generated from.
	Source string
	// Content is the formatted Go source code.
	Content []byte
}

// WriteFiles writes all generated files to the output directory.
// Files whose content did not change are left alone so their modification
// time stays put. It returns the names of the files written.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if old, err := os.ReadFile(outputPath); err == nil && bytes.Equal(old, file.Content) {
			continue
		}

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, file.Filename)
	}

	return written, nil
}
