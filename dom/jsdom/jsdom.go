//go:build js && wasm

// Package jsdom implements the dom runtime on top of the browser DOM using
// syscall/js.
package jsdom

import (
	"syscall/js"

	"domsl/dom"
)

// Document wraps a JavaScript document object.
type Document struct {
	doc js.Value
}

// New returns the global document.
func New() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// Wrap wraps an existing JavaScript document.
func Wrap(doc js.Value) *Document {
	return &Document{doc: doc}
}

var _ dom.Document = (*Document)(nil)

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{Node{v: d.doc.Call("createElement", tag)}}
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &Node{v: d.doc.Call("createTextNode", text)}
}

// CreateDocumentFragment implements dom.Document.
func (d *Document) CreateDocumentFragment() dom.Container {
	return &Node{v: d.doc.Call("createDocumentFragment")}
}

// Node wraps a JavaScript node.
type Node struct {
	v js.Value
}

// DOMNode returns the js.Value behind the node.
func (n *Node) DOMNode() any {
	return n.v
}

// Value returns the js.Value behind the node.
func (n *Node) Value() js.Value {
	return n.v
}

// AppendChild implements dom.Container.
func (n *Node) AppendChild(child dom.Node) {
	v, ok := child.DOMNode().(js.Value)
	if !ok {
		return
	}

	n.v.Call("appendChild", v)
}

// Element wraps a JavaScript element.
type Element struct {
	Node
}

// SetAttribute implements dom.Element.
func (e *Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

// Mount appends n to the first element matching selector and reports
// whether such an element exists.
func (d *Document) Mount(selector string, n dom.Node) bool {
	mount := d.doc.Call("querySelector", selector)
	if !mount.Truthy() {
		return false
	}

	(&Node{v: mount}).AppendChild(n)

	return true
}
