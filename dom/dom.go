package dom

// Node is any node that can be placed in a document tree.
type Node interface {
	// DOMNode returns the backend value behind the node.
	DOMNode() any
}

// Container is a node that accepts children.
type Container interface {
	Node
	AppendChild(child Node)
}

// Element is an element node.
type Element interface {
	Container
	SetAttribute(name, value string)
}

// Document creates nodes. Generated code receives a Document through the
// identifier named in the markup invocation.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(text string) Node
	CreateDocumentFragment() Container
}

// Component is implemented by the types generated for annotated component
// functions. N is the declared result type of the function.
type Component[N Node] interface {
	Render(doc Document, children []Node) N
}

// MustElement narrows a node created by CreateElement back to an Element.
// It panics if the backend returned something else, which would mean the
// Document implementation is broken.
func MustElement(n Node) Element {
	el, ok := n.(Element)
	if !ok {
		panic("dom: node created by CreateElement is not an Element")
	}

	return el
}
