package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/ast/astutil"

	"domsl/internal/common"
	"domsl/internal/expand"
)

// OutputName returns the name of the file generated from a .gox file.
func OutputName(goxName string) string {
	return goxName + ".go"
}

// Header returns the comment that starts every generated file.
func Header(goxName string) string {
	return fmt.Sprintf("// Code generated by domsl from %s. DO NOT EDIT.\n\n", filepath.Base(goxName))
}

// FileOptions control the assembly of a generated file.
type FileOptions struct {
	// Runtime is the runtime import of the source file.
	Runtime expand.Import
	// Strconv adds the strconv import.
	Strconv bool
	// DebugDir receives the unformatted text when formatting fails. A
	// sidecar there from an earlier failure is removed on success.
	DebugDir string
}

// Format prefixes src with the generated file header, adds the missing
// imports and formats the result. On failure the unformatted text is
// returned with the error.
func Format(goxName string, src []byte, opts FileOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(Header(goxName))
	buf.Write(src)

	base := filepath.Base(goxName)
	outName := OutputName(base)
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, outName, buf.Bytes(), parser.ParseComments)
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		_ = writeUnformatted(opts.DebugDir, base, buf.Bytes())

		return buf.Bytes(), fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	if rt := opts.Runtime; rt.Missing {
		if rt.Name == common.PkgAlias(rt.Path) {
			astutil.AddImport(fset, file, rt.Path)
		} else {
			astutil.AddNamedImport(fset, file, rt.Name, rt.Path)
		}
	}

	if opts.Strconv {
		astutil.AddImport(fset, file, "strconv")
	}

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		_ = writeUnformatted(opts.DebugDir, base, buf.Bytes())

		return buf.Bytes(), fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	_ = removeUnformatted(opts.DebugDir, base)

	return out.Bytes(), nil
}
