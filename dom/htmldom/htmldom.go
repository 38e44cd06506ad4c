// Package htmldom implements the dom runtime on top of golang.org/x/net/html
// nodes. It is meant for server side rendering and for testing generated
// code without a browser.
package htmldom

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"domsl/dom"
)

// Document creates nodes backed by *html.Node values.
type Document struct{}

// New returns a new Document.
func New() *Document {
	return &Document{}
}

var _ dom.Document = (*Document)(nil)

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{node{n: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}}
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &node{n: &html.Node{Type: html.TextNode, Data: text}}
}

// CreateDocumentFragment implements dom.Document. Appending a fragment to
// another container moves the fragment's children and leaves it empty.
func (d *Document) CreateDocumentFragment() dom.Container {
	return &Fragment{node{n: &html.Node{Type: html.DocumentNode}}}
}

type node struct {
	n *html.Node
}

// DOMNode returns the underlying *html.Node.
func (n *node) DOMNode() any {
	return n.n
}

// AppendChild appends child, detaching it from its current parent first.
func (n *node) AppendChild(child dom.Node) {
	c := htmlNode(child)
	if c == nil {
		return
	}

	if c.Type == html.DocumentNode {
		for c.FirstChild != nil {
			gc := c.FirstChild
			c.RemoveChild(gc)
			n.n.AppendChild(gc)
		}

		return
	}

	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}

	n.n.AppendChild(c)
}

// Element is an element node.
type Element struct {
	node
}

// SetAttribute sets or replaces an attribute, keeping insertion order.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}

	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// Fragment is a document fragment.
type Fragment struct {
	node
}

// htmlNode extracts the *html.Node behind any dom.Node, including the
// handle types that embed a dom.Element.
func htmlNode(n dom.Node) *html.Node {
	if n == nil {
		return nil
	}

	hn, _ := n.DOMNode().(*html.Node)

	return hn
}

// Render writes the HTML serialization of n to w. Fragments render their
// children one after another.
func Render(w io.Writer, n dom.Node) error {
	hn := htmlNode(n)
	if hn == nil {
		return fmt.Errorf("htmldom: %T is not backed by an html node", n)
	}

	if hn.Type != html.DocumentNode {
		return html.Render(w, hn)
	}

	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}

	return nil
}

// String renders n and returns the markup, or an error description.
func String(n dom.Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return err.Error()
	}

	return buf.String()
}
