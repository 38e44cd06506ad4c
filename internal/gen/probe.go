package gen

import (
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"domsl/internal/expand"
	"domsl/internal/markup"
)

// Prober renders invocations as calls to the runtime's Probe functions, with
// every typed site passed as an argument. Line directives keep the positions
// of the .gox file, so type errors point at the markup.
type Prober struct {
	File  *expand.File
	Names Names
	// Casts maps invocation IDs to the handle type of their root, or "".
	Casts map[int]string
}

// Render implements expand.Renderer.
func (p *Prober) Render(inv *expand.Invocation) (string, error) {
	var b strings.Builder

	n := p.Names
	doc := p.line(inv.DocPos) + inv.Doc
	id := strconv.Itoa(inv.ID)

	if el, ok := inv.Root.(*markup.Element); ok && el.IsComponent() {
		root, err := p.component(inv, el)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&b, "%s(%s, %s, %s", n.qualify("ProbeComponent"), root, doc, id)
	} else {
		typ := n.qualify("Node")
		if cast := p.Casts[inv.ID]; cast != "" {
			typ = n.qualify(cast)
		}

		fmt.Fprintf(&b, "%s[%s](%s, %s", n.qualify("Probe"), typ, doc, id)
	}

	for _, site := range inv.Sites {
		var (
			value string
			err   error
		)

		if site.Kind == markup.SiteComponent {
			value, err = p.component(inv, site.Element)
		} else {
			value, err = p.expr(inv, site.Expr)
		}

		if err != nil {
			return "", err
		}

		b.WriteString(", ")
		b.WriteString(value)
	}

	b.WriteString(")")

	tf := p.File.Fset.File(inv.Pos)
	b.WriteString(p.line(tf.Pos(inv.End)))

	return b.String(), nil
}

func (p *Prober) expr(inv *expand.Invocation, e *markup.Expr) (string, error) {
	src, err := p.File.ExprText(inv, e, p.Render)
	if err != nil {
		return "", err
	}

	return "(" + p.line(e.Pos) + src + ")", nil
}

// component renders (Type{fields}).Render(doc, nil): its type is the
// result of the component.
func (p *Prober) component(inv *expand.Invocation, el *markup.Element) (string, error) {
	fields := make([]string, 0, len(el.Attrs))

	for _, a := range el.Attrs {
		var value string

		switch {
		case a.Value == nil:
			value = "true"
		case a.Value.Braced:
			v, err := p.expr(inv, a.Value)
			if err != nil {
				return "", err
			}

			value = v
		default:
			value = p.line(a.Value.Pos) + a.Value.Src
		}

		fields = append(fields, p.line(a.NamePos)+a.Name+": "+value)
	}

	return fmt.Sprintf("(%s%s{%s}).Render(%s, nil)",
		p.line(el.NamePos), el.Name, strings.Join(fields, ", "), inv.Doc), nil
}

func (p *Prober) line(pos token.Pos) string {
	return lineDirective(p.File.Fset.Position(pos))
}

// lineDirective returns a comment giving the next token the position pos.
// The file name is relative to the directory of the file containing the
// directive, which is the directory of the .gox file.
func lineDirective(pos token.Position) string {
	if !pos.IsValid() {
		return ""
	}

	return fmt.Sprintf("/*line %s:%d:%d*/", filepath.Base(pos.Filename), pos.Line, pos.Column)
}

// ProbePrologue prepares a rewritten .gox source for type checking: a line
// directive before the package clause maps positions back to the .gox file,
// and the runtime import is added when the file lacks it. Neither changes
// the line numbers of the file.
func ProbePrologue(goxName string, src []byte, imp expand.Import) ([]byte, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, goxName, src, parser.PackageClauseOnly)
	if err != nil {
		return nil, fmt.Errorf("parsing package clause of %s: %w", goxName, err)
	}

	pkg := fset.Position(f.Package)
	nameEnd := fset.Position(f.Name.End()).Offset

	var b strings.Builder

	b.Write(src[:pkg.Offset])
	b.WriteString(lineDirective(pkg))
	b.Write(src[pkg.Offset:nameEnd])

	if imp.Missing {
		fmt.Fprintf(&b, "; import %s %s", imp.Name, strconv.Quote(imp.Path))
	}

	b.Write(src[nameEnd:])

	return []byte(b.String()), nil
}
