package page

import "domsl/dom"

// Label is a fmt.Stringer.
type Label string

func (l Label) String() string { return string(l) }

// Card is a hand-written component.
type Card struct {
	color string
}

func (c Card) Render(doc dom.Document, children []dom.Node) dom.Node {
	return doc.CreateTextNode(c.color)
}
