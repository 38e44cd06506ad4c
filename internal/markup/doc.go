// Package markup parses the XML-like markup of a jsx! invocation.
//
// The parser does not read characters. It consumes the token stream that
// go/scanner produces for the host file, so attribute values and embedded
// expressions can be any Go expression the scanner accepts, and comments
// between tags disappear for free. Only well-formedness is checked here:
// whether a name is a known HTML tag or a component is decided later.
//
// Grammar:
//
//	node  := '<' '>' node* '<' '/' '>'
//	       | '<' name attr* '/' '>'
//	       | '<' name attr* '>' node* '<' '/' name '>'
//	       | '{' tokens '}'
//	       | STRING | CHAR | INT | FLOAT | IMAG
//	name  := word (('-' | '.') word)*
//	attr  := word ('-' word)* ('=' value)?
//	value := STRING | '{' tokens '}' | INT | FLOAT | CHAR | IMAG | IDENT
//
// A word is an identifier or a Go keyword, so <select> and <var> work.
package markup
