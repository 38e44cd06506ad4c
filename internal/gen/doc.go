// Package gen prints lowered invocations and component declarations as Go
// source and assembles the generated files.
//
// Generation approach uses plain string building for construction
// expressions, text/template for component types and go/format for the
// final layout, so the output is deterministic.
//
// Codegen patterns:
//   - Element: an immediately invoked closure creating the element, setting
//     its attributes and appending its children in source order
//   - Fragment: the same closure around a document fragment
//   - Embedded value: a closure evaluating the expression once and placing
//     it with the rule chosen by dispatch
//   - Component: a composite literal of the component type and a Render call
//   - Probe: a dom.Probe call listing every typed site, for type analysis
package gen
