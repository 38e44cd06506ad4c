package gen

// Reserved identifiers of generated code. Markup expressions must not use
// them.
const (
	NodeVar = "_domslNode"
	TmpVar  = "_domslTmp"
	FragVar = "_domslFrag"
	ItemVar = "_domslItem"
)

// Names are the identifiers generated code refers to.
type Names struct {
	// Runtime is the local name of the dom runtime package.
	Runtime string
	Node    string
	Tmp     string
	Frag    string
	Item    string
}

// DefaultNames returns the reserved names with the given runtime alias.
func DefaultNames(runtime string) Names {
	return Names{
		Runtime: runtime,
		Node:    NodeVar,
		Tmp:     TmpVar,
		Frag:    FragVar,
		Item:    ItemVar,
	}
}

// qualify returns runtime.name.
func (n Names) qualify(name string) string {
	return n.Runtime + "." + name
}
