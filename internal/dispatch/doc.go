// Package dispatch decides, from the static type of an embedded expression,
// how the generated code turns its value into DOM nodes.
//
// The decision is a ranked list of capability checks over go/types. The
// first rule, in priority order, whose check holds wins:
//
//  1. Node: the type implements dom.Node; the value is appended as is.
//  2. String: underlying string or []byte; one text node.
//  3. Text: error, fmt.Stringer, bool or a number; one text node with the
//     value formatted like fmt would.
//  4. IterNode: a slice, array, pointer to array or iter.Seq of rule 1
//     values; a fragment with every item appended.
//  5. IterString: the same containers of rule 2 values.
//  6. IterText: the same containers of rule 3 values.
//
// Ranking makes overlapping capabilities deterministic: a type that is both
// a node and a string is a node. Maps and channels are not iterables here,
// and iterables of iterables are rejected. Nothing is decided at run time.
package dispatch
