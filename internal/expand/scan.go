package expand

import (
	"go/scanner"
	"go/token"

	"domsl/internal/diagnostic"
	"domsl/internal/markup"
)

// Macro is the name of the invocation form.
const Macro = "jsx"

// Invocation is one parsed jsx! invocation.
type Invocation struct {
	ID int
	// Doc is the document identifier.
	Doc    string
	DocPos token.Pos
	Pos    token.Pos
	Root   markup.Node
	// Sites lists the typed places of the tree (see markup.Sites).
	Sites []markup.Site
	// Start and End delimit the invocation text, from the macro name through
	// the closing parenthesis.
	Start, End int
	// Nested holds the invocations inside each braced expression.
	Nested map[*markup.Expr][]*Invocation

	// base is the index of the first body token in the file's tokens.
	base int
}

// File is a scanned .gox file.
type File struct {
	Fset *token.FileSet
	Name string
	Src  []byte
	// Invocations are the top-level invocations in source order.
	Invocations []*Invocation

	toks []markup.Token
	all  []*Invocation
}

// Scan tokenizes src and parses every invocation in it.
func Scan(fset *token.FileSet, name string, src []byte) (*File, error) {
	file := fset.AddFile(name, -1, len(src))

	toks, err := markup.Tokenize(file, src)
	if err != nil {
		return nil, syntaxError(fset, err)
	}

	f := &File{Fset: fset, Name: name, Src: src, toks: toks}

	f.Invocations, err = f.find(0, len(toks))
	if err != nil {
		return nil, err
	}

	return f, nil
}

// All returns every invocation of the file, nested ones included, indexed
// by ID.
func (f *File) All() []*Invocation {
	return f.all
}

// Count returns the number of invocations, nested ones included.
func (f *File) Count() int {
	return len(f.all)
}

func (f *File) errorf(pos token.Pos, format string, args ...any) error {
	return diagnostic.Errorf(diagnostic.CodeSyntax, f.Fset.Position(pos), format, args...)
}

func syntaxError(fset *token.FileSet, err error) error {
	switch e := err.(type) {
	case *markup.ParseError:
		return diagnostic.Errorf(diagnostic.CodeSyntax, fset.Position(e.Pos), "%s", e.Error())
	case *scanner.Error:
		return diagnostic.Errorf(diagnostic.CodeSyntax, e.Pos, "%s", e.Msg)
	default:
		return err
	}
}

// isStart reports whether toks[i:] starts with "jsx!(".
func (f *File) isStart(i, hi int) bool {
	if i+2 >= hi {
		return false
	}

	name, bang, paren := f.toks[i], f.toks[i+1], f.toks[i+2]

	return name.Tok == token.IDENT && name.Lit == Macro &&
		bang.Tok == token.NOT && bang.Off == name.End &&
		paren.Tok == token.LPAREN
}

// find parses the invocations starting in toks[lo:hi].
func (f *File) find(lo, hi int) ([]*Invocation, error) {
	var found []*Invocation

	for i := lo; i < hi; i++ {
		if !f.isStart(i, hi) {
			continue
		}

		inv, next, err := f.parseInvocation(i, hi)
		if err != nil {
			return nil, err
		}

		found = append(found, inv)
		i = next - 1
	}

	return found, nil
}

// parseInvocation parses the invocation starting at toks[i] and returns the
// index of the token after it.
func (f *File) parseInvocation(i, hi int) (*Invocation, int, error) {
	start := f.toks[i]
	lparen := f.toks[i+2]
	j := i + 3

	at := func(k int) (markup.Token, bool) {
		if k >= hi {
			return markup.Token{}, false
		}

		return f.toks[k], true
	}

	endPos := func() token.Pos {
		if hi > 0 && hi <= len(f.toks) {
			return f.toks[hi-1].Pos
		}

		return lparen.Pos
	}

	doc, ok := at(j)
	if !ok {
		return nil, 0, f.errorf(endPos(), "unexpected end of input, expected the document identifier of %s!", Macro)
	}

	if doc.Tok != token.IDENT {
		return nil, 0, f.errorf(doc.Pos, "expected the document identifier, found `%s` instead", doc.Text())
	}

	assign, ok1 := at(j + 1)
	gtr, ok2 := at(j + 2)

	if !ok1 || !ok2 || assign.Tok != token.ASSIGN || gtr.Tok != token.GTR || gtr.Off != assign.End {
		blame := doc
		if ok1 {
			blame = assign
		}

		return nil, 0, f.errorf(blame.Pos, "expected `=>` after the document identifier %s", doc.Lit)
	}

	open, ok := at(j + 3)
	if !ok || open.Tok != token.LBRACE {
		blame := gtr
		if ok {
			blame = open
		}

		return nil, 0, f.errorf(blame.Pos, "expected `{` to start the markup of %s!", Macro)
	}

	body := j + 4
	closing := -1
	depth := 1

	for k := body; k < hi; k++ {
		switch f.toks[k].Tok {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}

		if depth == 0 {
			closing = k
			break
		}
	}

	if closing < 0 {
		return nil, 0, f.errorf(endPos(), "unexpected end of input (forgot to close `{`?)")
	}

	rparen, ok := at(closing + 1)
	if !ok {
		return nil, 0, f.errorf(f.toks[closing].Pos, "expected `)` to close %s!", Macro)
	}

	if rparen.Tok != token.RPAREN {
		return nil, 0, f.errorf(rparen.Pos, "unexpected token `%s`, expected `)` to close %s!", rparen.Text(), Macro)
	}

	inv := &Invocation{
		ID:     len(f.all),
		Doc:    doc.Lit,
		DocPos: doc.Pos,
		Pos:    start.Pos,
		Start:  start.Off,
		End:    rparen.End,
		Nested: make(map[*markup.Expr][]*Invocation),
		base:   body,
	}
	f.all = append(f.all, inv)

	root, err := markup.Parse(f.toks[body:closing], f.Src, f.toks[closing].Pos)
	if err != nil {
		return nil, 0, syntaxError(f.Fset, err)
	}

	inv.Root = root
	inv.Sites = markup.Sites(root)

	if err := f.findNested(inv); err != nil {
		return nil, 0, err
	}

	return inv, closing + 2, nil
}

// findNested parses the invocations inside the braced expressions of inv.
func (f *File) findNested(inv *Invocation) error {
	var err error

	visit := func(e *markup.Expr) {
		if err != nil || e == nil || !e.Braced {
			return
		}

		var nested []*Invocation

		nested, err = f.find(inv.base+e.First, inv.base+e.Last+1)
		if len(nested) > 0 {
			inv.Nested[e] = nested
		}
	}

	markup.Inspect(inv.Root, func(n markup.Node) bool {
		switch n := n.(type) {
		case *markup.Element:
			for _, a := range n.Attrs {
				visit(a.Value)
			}
		case *markup.Embed:
			visit(n.Expr)
		}

		return err == nil
	})

	return err
}
