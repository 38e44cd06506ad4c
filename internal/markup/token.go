package markup

import (
	"go/scanner"
	"go/token"
)

// Token is a host token with its byte range in the source.
type Token struct {
	Tok token.Token
	Lit string
	Pos token.Pos
	// Off and End delimit the token text in the source.
	Off, End int
}

// Text returns the source spelling of the token.
func (t Token) Text() string {
	if t.Lit != "" {
		return t.Lit
	}

	return t.Tok.String()
}

// IsWord reports whether the token can be part of a tag or attribute name.
func (t Token) IsWord() bool {
	return t.Tok == token.IDENT || t.Tok.IsKeyword()
}

// Tokenize scans src with go/scanner. Automatically inserted semicolons are
// dropped since markup spans lines freely; the EOF token is not included.
// The file must have been added to a FileSet with the size of src.
func Tokenize(file *token.File, src []byte) ([]Token, error) {
	var (
		s    scanner.Scanner
		errs scanner.ErrorList
	)

	s.Init(file, src, errs.Add, 0)

	var toks []Token

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		off := file.Offset(pos)
		end := off + len(tok.String())

		if lit != "" {
			end = off + len(lit)
		}

		toks = append(toks, Token{Tok: tok, Lit: lit, Pos: pos, Off: off, End: min(end, len(src))})
	}

	if errs.Len() > 0 {
		errs.Sort()
		return nil, errs[0]
	}

	return toks, nil
}
