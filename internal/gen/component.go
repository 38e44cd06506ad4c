package gen

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"domsl/internal/component"
)

// componentData holds all data needed for the component template.
type componentData struct {
	Name       string
	Func       string
	Runtime    string
	TypeParams string
	TypeArgs   string
	Fields     []component.Param
	Args       string
	Result     string
	Generic    bool
}

func buildComponentData(d *component.Decl, names Names) *componentData {
	data := &componentData{
		Name:    d.Name,
		Func:    d.Func,
		Runtime: names.Runtime,
		Fields:  d.Fields(),
		Result:  d.Result,
		Generic: d.Generic(),
	}

	if d.Generic() {
		params := make([]string, 0, len(d.TypeParams))
		args := make([]string, 0, len(d.TypeParams))

		for _, tp := range d.TypeParams {
			params = append(params, tp.Name+" "+tp.Type)
			args = append(args, tp.Name)
		}

		data.TypeParams = "[" + strings.Join(params, ", ") + "]"
		data.TypeArgs = "[" + strings.Join(args, ", ") + "]"
	}

	args := make([]string, 0, len(d.Params))

	for i, p := range d.Params {
		switch i {
		case d.Children:
			args = append(args, "children")
		case d.Document:
			args = append(args, "doc")
		default:
			args = append(args, "c."+p.Name)
		}
	}

	data.Args = strings.Join(args, ", ")

	return data
}

var componentTemplate = template.Must(template.New("component").Parse(`
// {{.Name}} is the component rendered by {{.Func}}.
type {{.Name}}{{.TypeParams}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}

// Render calls {{.Func}} with the fields of c.
func (c {{.Name}}{{.TypeArgs}}) Render(doc {{.Runtime}}.Document, children []{{.Runtime}}.Node) {{.Result}} {
	return {{.Func}}{{.TypeArgs}}({{.Args}})
}
{{if not .Generic}}
var _ {{.Runtime}}.Component[{{.Result}}] = {{.Name}}{}
{{end}}`))

// Component returns the declarations generated for d.
func Component(d *component.Decl, names Names) (string, error) {
	var buf bytes.Buffer
	if err := componentTemplate.Execute(&buf, buildComponentData(d, names)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// InsertComponents inserts the generated declarations of decls right after
// their functions. fset must hold the positions of src. With lines set, the
// inserted text is framed by line directives: the generated code reports
// positions at the function name and the code after it keeps its own.
func InsertComponents(fset *token.FileSet, src []byte, decls []*component.Decl, names Names, lines bool) ([]byte, error) {
	var b bytes.Buffer

	cur := 0

	for _, d := range decls {
		text, err := Component(d, names)
		if err != nil {
			return nil, fmt.Errorf("generating component %s: %w", d.Name, err)
		}

		end := fset.Position(d.End)

		b.Write(src[cur:end.Offset])
		b.WriteString("\n")

		if lines {
			b.WriteString(lineDirective(fset.Position(d.NamePos)))
		}

		b.WriteString(text)

		if lines {
			b.WriteString(lineDirective(end))
		}

		cur = end.Offset
	}

	b.Write(src[cur:])

	return b.Bytes(), nil
}
