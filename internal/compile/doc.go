// Package compile expands the .gox files of a package directory into
// generated Go files.
//
// Compilation runs in two passes. The first renders every invocation as a
// probe call and type-checks the probes together with the rest of the
// package to learn the types of the embedded expressions. The second lowers
// every invocation with those types and emits the construction code.
// Component functions get their generated type in both passes, so markup
// may use components declared in the same package.
package compile
