package markup

// Inspect traverses the tree rooted at n in depth-first source order,
// calling f for every node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}

	var children []Node

	switch n := n.(type) {
	case *Element:
		children = n.Children
	case *Fragment:
		children = n.Children
	}

	for _, c := range children {
		Inspect(c, f)
	}
}

// SiteKind classifies the host expressions of a tree.
type SiteKind int

const (
	// SiteEmbed is an embedded child expression.
	SiteEmbed SiteKind = iota
	// SiteAttr is a non-literal attribute value of an HTML element.
	SiteAttr
	// SiteComponent is a component construction; its Expr is nil.
	SiteComponent
)

// Site is a place in the tree where the generated code evaluates host
// code whose type matters.
type Site struct {
	Kind    SiteKind
	Expr    *Expr
	Element *Element
	Attr    *Attr
}

// Sites lists the sites of the tree in depth-first source order: for an
// element, its own attribute sites come before the sites of its children.
// The order is the contract between the type probe and the lowering pass.
func Sites(root Node) []Site {
	var sites []Site

	Inspect(root, func(n Node) bool {
		switch n := n.(type) {
		case *Embed:
			sites = append(sites, Site{Kind: SiteEmbed, Expr: n.Expr})
		case *Element:
			if n.IsComponent() {
				sites = append(sites, Site{Kind: SiteComponent, Element: n})
				return true
			}

			for _, a := range n.Attrs {
				if a.Value != nil && !a.Value.IsStringLit() {
					sites = append(sites, Site{Kind: SiteAttr, Expr: a.Value, Element: n, Attr: a})
				}
			}
		}

		return true
	})

	return sites
}
