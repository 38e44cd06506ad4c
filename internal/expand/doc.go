// Package expand finds jsx! invocations in .gox files and rewrites them.
//
// An invocation has the form
//
//	jsx!(doc => { <markup> })
//
// where doc names the dom.Document the generated code builds nodes with.
// Invocations may be nested inside the embedded expressions of another
// invocation; they are parsed recursively and every invocation of a file
// gets an ID, outer ones before inner ones. What an invocation is replaced
// with is up to the caller of Rewrite.
package expand
