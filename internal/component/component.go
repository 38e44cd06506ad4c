// Package component finds functions annotated with //domsl:component and
// checks that they can be turned into component types.
//
//	//domsl:component Card
//	func card(color string, /*domsl:children*/ children []dom.Node) dom.Node
//
// becomes a struct type Card{color string} with a Render method calling
// card. A parameter marked /*domsl:document*/ receives the document passed
// to Render instead of becoming a field.
package component

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"domsl/internal/common"
	"domsl/internal/diagnostic"
)

// Markers.
const (
	markerPrefix    = "domsl:"
	MarkerComponent = "domsl:component"
	MarkerChildren  = "domsl:children"
	MarkerDocument  = "domsl:document"
)

// Param is a parameter of a component function, or a type parameter.
type Param struct {
	Name string
	// Type is the printed type, or the constraint of a type parameter.
	Type string
}

// Decl is a component declaration.
type Decl struct {
	// Name is the generated type name.
	Name string
	// Func is the annotated function.
	Func       string
	TypeParams []Param
	// Params are all the parameters of the function in order.
	Params []Param
	// Children and Document are indexes into Params, or -1.
	Children int
	Document int
	// Result is the printed result type.
	Result string
	// NamePos is the position of the function name and End the position
	// right after the function body.
	NamePos token.Pos
	End     token.Pos
}

// Fields returns the parameters that become struct fields.
func (d *Decl) Fields() []Param {
	fields := make([]Param, 0, len(d.Params))

	for i, p := range d.Params {
		if i != d.Children && i != d.Document {
			fields = append(fields, p)
		}
	}

	return fields
}

// Generic reports whether the component has type parameters.
func (d *Decl) Generic() bool {
	return len(d.TypeParams) > 0
}

// Find returns the components declared in f, in source order. f must have
// been parsed with comments.
func Find(fset *token.FileSet, f *ast.File) ([]*Decl, error) {
	var decls []*Decl

	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		marker, err := directive(fset, fn)
		if err != nil {
			return nil, err
		}

		if marker == nil {
			continue
		}

		decl, err := lower(fset, f, fn, marker)
		if err != nil {
			return nil, err
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

func errorf(fset *token.FileSet, pos token.Pos, format string, args ...any) *diagnostic.Diagnostic {
	return diagnostic.Errorf(diagnostic.CodeComponent, fset.Position(pos), format, args...)
}

// directive returns the //domsl:component comment of fn, if any.
func directive(fset *token.FileSet, fn *ast.FuncDecl) (*ast.Comment, error) {
	var found *ast.Comment

	for _, c := range fn.Doc.List {
		text, ok := strings.CutPrefix(c.Text, "//")
		if !ok || !strings.HasPrefix(text, markerPrefix) {
			continue
		}

		name, _, _ := strings.Cut(text, " ")
		if name != MarkerComponent {
			return nil, errorf(fset, c.Slash, "unknown marker '//%s' on function '%s'", name, fn.Name.Name)
		}

		if found != nil {
			return nil, errorf(fset, c.Slash, "function '%s' is marked as a component twice", fn.Name.Name)
		}

		found = c
	}

	return found, nil
}

func lower(fset *token.FileSet, f *ast.File, fn *ast.FuncDecl, marker *ast.Comment) (*Decl, error) {
	name, err := componentName(fset, fn, marker)
	if err != nil {
		return nil, err
	}

	fname := fn.Name.Name

	if err := checkShape(fset, fn); err != nil {
		return nil, err
	}

	decl := &Decl{
		Name:     name,
		Func:     fname,
		Result:   types.ExprString(fn.Type.Results.List[0].Type),
		Children: -1,
		Document: -1,
		NamePos:  fn.Name.Pos(),
		End:      fn.End(),
	}

	if tp := fn.Type.TypeParams; tp != nil {
		for _, field := range tp.List {
			for _, n := range field.Names {
				decl.TypeParams = append(decl.TypeParams, Param{Name: n.Name, Type: types.ExprString(field.Type)})
			}
		}
	}

	var (
		names []*ast.Ident
		// after[i] is the end of the token preceding names[i], not
		// counting commas.
		after []token.Pos
		prev  = fn.Type.Params.Opening + 1
	)

	for _, field := range fn.Type.Params.List {
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			pos := field.Type.Pos()
			if len(field.Names) > 0 {
				pos = field.Names[0].Pos()
			}

			return nil, errorf(fset, pos, "variadic parameter of component function '%s' cannot become a field", fname)
		}

		if len(field.Names) == 0 {
			return nil, errorf(fset, field.Type.Pos(), "parameters of component function '%s' must be named", fname)
		}

		for _, n := range field.Names {
			if !common.IsIdent(n.Name) {
				return nil, errorf(fset, n.Pos(), "blank parameter of component function '%s' cannot become a field", fname)
			}

			names = append(names, n)
			after = append(after, prev)
			prev = n.End()
			decl.Params = append(decl.Params, Param{Name: n.Name, Type: types.ExprString(field.Type)})
		}

		prev = field.Type.End()
	}

	if err := markParams(fset, f, fn, names, after, decl); err != nil {
		return nil, err
	}

	return decl, nil
}

func componentName(fset *token.FileSet, fn *ast.FuncDecl, marker *ast.Comment) (string, error) {
	args := strings.Fields(strings.TrimPrefix(marker.Text, "//"+MarkerComponent))

	switch {
	case len(args) == 0:
		return "", errorf(fset, marker.Slash, "missing component name after //%s", MarkerComponent)
	case len(args) > 1:
		return "", errorf(fset, marker.Slash, "malformed component name '%s': want a single identifier", strings.Join(args, " "))
	}

	name := args[0]

	if !common.IsIdent(name) || !common.IsComponentName(name) {
		return "", errorf(fset, marker.Slash,
			"malformed component name '%s': it must be an identifier that does not start with a lower-case letter", name)
	}

	if name == fn.Name.Name {
		return "", errorf(fset, marker.Slash, "component name '%s' is already the name of the function", name)
	}

	return name, nil
}

func checkShape(fset *token.FileSet, fn *ast.FuncDecl) error {
	fname := fn.Name.Name

	if fn.Recv != nil {
		return errorf(fset, fn.Recv.Pos(), "component function '%s' cannot be a method", fname)
	}

	for _, c := range fn.Doc.List {
		for _, foreign := range []string{"//export", "//go:linkname"} {
			if c.Text == foreign || strings.HasPrefix(c.Text, foreign+" ") {
				return errorf(fset, c.Slash, "component function '%s' cannot use %s", fname, foreign)
			}
		}
	}

	if fn.Body == nil {
		return errorf(fset, fn.Name.Pos(), "component function '%s' must have a body", fname)
	}

	results := 0
	if fn.Type.Results != nil {
		results = fn.Type.Results.NumFields()
	}

	switch results {
	case 1:
		return nil
	case 0:
		return errorf(fset, fn.Type.Params.Closing, "component function '%s' must return a result", fname)
	default:
		return errorf(fset, fn.Type.Results.Pos(), "component function '%s' must have exactly one result, it has %d", fname, results)
	}
}

// markParams binds /*domsl:...*/ comments in the parameter list to the
// parameter name that directly follows them. Only commas and other
// comments may separate a marker from its name.
func markParams(fset *token.FileSet, f *ast.File, fn *ast.FuncDecl, names []*ast.Ident, after []token.Pos, decl *Decl) error {
	params := fn.Type.Params

	for _, group := range f.Comments {
		if group.End() <= params.Opening || group.Pos() >= params.Closing {
			continue
		}

		for _, c := range group.List {
			text, ok := strings.CutPrefix(c.Text, "/*")
			if !ok {
				continue
			}

			text = strings.TrimSpace(strings.TrimSuffix(text, "*/"))
			if !strings.HasPrefix(text, markerPrefix) {
				continue
			}

			idx := -1

			for i, n := range names {
				if n.Pos() >= c.End() {
					idx = i
					break
				}
			}

			if idx < 0 || c.Slash < after[idx] {
				return errorf(fset, c.Slash, "marker '/*%s*/' must be placed directly before a parameter name", text)
			}

			var slot *int

			switch text {
			case MarkerChildren:
				slot = &decl.Children
			case MarkerDocument:
				slot = &decl.Document
			default:
				return errorf(fset, c.Slash, "unknown marker '/*%s*/' in component function '%s'", text, fn.Name.Name)
			}

			if *slot >= 0 {
				return errorf(fset, c.Slash, "only one parameter of component function '%s' can be marked /*%s*/", fn.Name.Name, text)
			}

			if idx == decl.Children || idx == decl.Document {
				return errorf(fset, c.Slash, "parameter '%s' is marked twice", names[idx].Name)
			}

			*slot = idx
		}
	}

	return nil
}
