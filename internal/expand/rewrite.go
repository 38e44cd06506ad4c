package expand

import (
	"bytes"
	"fmt"
	"go/parser"
	"go/token"
	"strconv"

	"domsl/internal/common"
	"domsl/internal/markup"
)

// Renderer produces the replacement text of an invocation.
type Renderer func(inv *Invocation) (string, error)

// Rewrite returns the file source with every top-level invocation replaced
// by its rendering.
func (f *File) Rewrite(render Renderer) ([]byte, error) {
	var buf bytes.Buffer

	if err := f.splice(&buf, 0, len(f.Src), f.Invocations, render); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExprText returns the source of an expression of inv with the invocations
// nested in it replaced by their rendering.
func (f *File) ExprText(inv *Invocation, e *markup.Expr, render Renderer) (string, error) {
	nested := inv.Nested[e]
	if len(nested) == 0 {
		return e.Src, nil
	}

	first, last := f.toks[inv.base+e.First], f.toks[inv.base+e.Last]

	var buf bytes.Buffer
	if err := f.splice(&buf, first.Off, last.End, nested, render); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (f *File) splice(buf *bytes.Buffer, from, to int, invs []*Invocation, render Renderer) error {
	cur := from

	for _, inv := range invs {
		text, err := render(inv)
		if err != nil {
			return err
		}

		buf.Write(f.Src[cur:inv.Start])
		buf.WriteString(text)
		cur = inv.End
	}

	buf.Write(f.Src[cur:to])

	return nil
}

// Import describes how a file refers to the dom runtime package.
type Import struct {
	// Name is the identifier generated code qualifies runtime names with.
	Name string
	// Path is the runtime import path.
	Path string
	// Missing is set when the file does not import the runtime under Name,
	// so the import has to be added to the output.
	Missing bool
}

// RuntimeImport inspects the imports of a .gox file. The file is not valid
// Go, but everything up to the end of the import declarations is.
func RuntimeImport(name string, src []byte, runtimePath string) (Import, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, name, src, parser.ImportsOnly)
	if err != nil {
		return Import{}, fmt.Errorf("parsing imports of %s: %w", name, err)
	}

	taken := make(map[string]bool)

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		local := common.PkgAlias(path)
		if spec.Name != nil {
			local = spec.Name.Name
		}

		if path == runtimePath && local != "_" && local != "." {
			return Import{Name: local, Path: runtimePath}, nil
		}

		taken[local] = true
	}

	local := common.PkgAlias(runtimePath)
	for taken[local] {
		local = "domsl" + local
	}

	return Import{Name: local, Path: runtimePath, Missing: true}, nil
}
