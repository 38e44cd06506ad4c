// Package diagnostic provides the structured errors and warnings reported
// while expanding markup and lowering components.
//
// Every diagnostic carries the source position of the offending construct
// in the .gox file, a stable code and, when the input looks like a typo,
// suggestions.
//
// Codes:
//   - syntax: malformed markup or invocation
//   - unknown-tag, invalid-attribute, content-model: schema violations
//   - component: malformed component declarations
//   - dispatch, no-text: embedded values the generator cannot place
package diagnostic
