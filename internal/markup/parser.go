package markup

import (
	"go/token"
	"strings"
)

const (
	expectNode  = "a tag, {expression} or string literal"
	expectName  = "a tag name"
	expectValue = "an attribute value"
	expectClose = "an attribute, '>' or '/>'"
)

type parser struct {
	toks []Token
	src  []byte
	i    int
	// eof is reported as the position of errors at the end of the input.
	eof token.Pos
}

// Parse parses exactly one markup node from toks. src is the source the
// tokens were scanned from; eof is the position to blame when the tokens run
// out, usually the closing brace of the invocation body.
func Parse(toks []Token, src []byte, eof token.Pos) (Node, error) {
	p := &parser{toks: toks, src: src, eof: eof}

	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	if t, ok := p.peek(0); ok {
		return nil, p.unexpected(t, "end of markup (wrap multiple roots in a fragment <>...</>)")
	}

	return n, nil
}

func (p *parser) peek(k int) (Token, bool) {
	if p.i+k >= len(p.toks) {
		return Token{}, false
	}

	return p.toks[p.i+k], true
}

func (p *parser) is(k int, tok token.Token) bool {
	t, ok := p.peek(k)
	return ok && t.Tok == tok
}

func (p *parser) next() Token {
	t := p.toks[p.i]
	p.i++

	return t
}

func (p *parser) end(expected string) error {
	return &ParseError{Kind: UnexpectedEnd, Pos: p.eof, Expected: expected}
}

func (p *parser) unexpected(t Token, expected string) error {
	return &ParseError{Kind: UnexpectedToken, Pos: t.Pos, Found: t.Text(), Expected: expected}
}

// expect consumes a token of the given kind.
func (p *parser) expect(tok token.Token) (Token, error) {
	t, ok := p.peek(0)
	if !ok {
		return Token{}, p.end("'" + tok.String() + "'")
	}

	if t.Tok != tok {
		return Token{}, p.unexpected(t, "'"+tok.String()+"'")
	}

	p.i++

	return t, nil
}

func (p *parser) parseNode() (Node, error) {
	t, ok := p.peek(0)
	if !ok {
		return nil, p.end(expectNode)
	}

	switch t.Tok {
	case token.LSS:
		return p.parseTag()
	case token.LBRACE:
		e, err := p.parseBraced()
		if err != nil {
			return nil, err
		}

		return &Embed{Expr: e}, nil
	case token.STRING, token.CHAR, token.INT, token.FLOAT, token.IMAG:
		return &Embed{Expr: p.single()}, nil
	case token.IDENT:
		return nil, p.unexpected(t, "text as a quoted string literal or {expression}")
	default:
		return nil, p.unexpected(t, expectNode)
	}
}

func (p *parser) parseTag() (Node, error) {
	lt := p.next()

	t, ok := p.peek(0)
	if !ok {
		return nil, p.end(expectName)
	}

	if t.Tok == token.GTR {
		p.i++
		return p.parseFragment(lt)
	}

	if !t.IsWord() {
		return nil, p.unexpected(t, expectName+" or '>'")
	}

	el := &Element{Lt: lt.Pos, NamePos: t.Pos}
	el.Name = p.parseName(true)

attrs:
	for {
		t, ok := p.peek(0)
		if !ok {
			return nil, p.end(expectClose)
		}

		switch {
		case t.IsWord():
			attr, err := p.parseAttr()
			if err != nil {
				return nil, err
			}

			el.Attrs = append(el.Attrs, attr)
		case t.Tok == token.QUO:
			p.i++
			if _, err := p.expect(token.GTR); err != nil {
				return nil, err
			}

			el.SelfClosing = true

			return el, nil
		case t.Tok == token.GTR:
			p.i++
			break attrs
		default:
			return nil, p.unexpected(t, expectClose)
		}
	}

	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}

	el.Children = children

	return el, p.parseClosing(el.Name)
}

func (p *parser) parseFragment(lt Token) (Node, error) {
	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}

	return &Fragment{Lt: lt.Pos, Children: children}, p.parseClosing("")
}

// parseChildren parses nodes up to the next "</".
func (p *parser) parseChildren() ([]Node, error) {
	var children []Node

	for {
		if _, ok := p.peek(0); !ok {
			return nil, p.end("a closing tag")
		}

		if p.is(0, token.LSS) && p.is(1, token.QUO) {
			return children, nil
		}

		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}

		children = append(children, n)
	}
}

// parseClosing parses "</name>" or "</>" for an empty name.
func (p *parser) parseClosing(name string) error {
	lt := p.next()
	p.next() // '/'

	want := "</" + name + ">"

	t, ok := p.peek(0)
	if !ok {
		return p.end(want)
	}

	found := ""
	if t.IsWord() {
		found = p.parseName(true)
	}

	gt, err := p.expect(token.GTR)
	if err != nil {
		return err
	}

	if found != name {
		return &ParseError{
			Kind:     UnexpectedItem,
			Pos:      lt.Pos,
			Found:    string(p.src[lt.Off:gt.End]),
			Expected: "`" + want + "`",
		}
	}

	return nil
}

// parseName joins adjacent words separated by '-' (and '.' if dots is set)
// into one name. The current token must be a word.
func (p *parser) parseName(dots bool) string {
	first := p.next()

	var b strings.Builder

	b.WriteString(first.Text())

	last := first

	for {
		sep, ok1 := p.peek(0)
		word, ok2 := p.peek(1)

		if !ok1 || !ok2 || sep.Off != last.End || word.Off != sep.End {
			return b.String()
		}

		if sep.Tok != token.SUB && (!dots || sep.Tok != token.PERIOD) {
			return b.String()
		}

		if !word.IsWord() && (sep.Tok != token.SUB || word.Tok != token.INT) {
			return b.String()
		}

		b.WriteString(sep.Text())
		b.WriteString(word.Text())

		p.i += 2
		last = word
	}
}

func (p *parser) parseAttr() (*Attr, error) {
	nameTok, _ := p.peek(0)
	attr := &Attr{NamePos: nameTok.Pos, Name: p.parseName(false)}

	if !p.is(0, token.ASSIGN) {
		return attr, nil
	}

	p.i++

	t, ok := p.peek(0)
	if !ok {
		return nil, p.end(expectValue)
	}

	switch t.Tok {
	case token.LBRACE:
		e, err := p.parseBraced()
		if err != nil {
			return nil, err
		}

		attr.Value = e
	case token.STRING, token.CHAR, token.INT, token.FLOAT, token.IMAG, token.IDENT:
		attr.Value = p.single()
	default:
		return nil, p.unexpected(t, expectValue)
	}

	return attr, nil
}

// single consumes one token as an expression.
func (p *parser) single() *Expr {
	t := p.next()

	return &Expr{Src: t.Text(), Pos: t.Pos, Tok: t.Tok, First: p.i - 1, Last: p.i - 1}
}

// parseBraced consumes {tokens} with balanced braces.
func (p *parser) parseBraced() (*Expr, error) {
	p.next()
	first := p.i
	depth := 1

	for {
		t, ok := p.peek(0)
		if !ok {
			return nil, p.end("'}'")
		}

		p.i++

		switch t.Tok {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}

		if depth > 0 {
			continue
		}

		if p.i-1 == first {
			return nil, p.unexpected(t, "an expression")
		}

		start, end := p.toks[first], p.toks[p.i-2]

		return &Expr{
			Src:    string(p.src[start.Off:end.End]),
			Pos:    start.Pos,
			Braced: true,
			Tok:    token.ILLEGAL,
			First:  first,
			Last:   p.i - 2,
		}, nil
	}
}
