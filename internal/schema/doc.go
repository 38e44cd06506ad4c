// Package schema holds the table of HTML elements the markup validator
// checks names and attributes against.
//
// The table is embedded as html.yaml, parsed once per process and shared
// read-only afterwards, so concurrent compilations may use it without
// locking. Entries are sorted by name and looked up by binary search; the
// sort order is verified once per process unless the binary is built with
// the domsl_release tag.
//
// Children rules and content categories are informational. The validator
// only enforces them when asked to (see check.Options.ContentModel).
package schema
