// Package dom is the runtime contract targeted by code generated by domsl.
//
// Generated code only talks to the interfaces declared here: a Document
// creates element, text and fragment nodes, elements receive attributes
// and children in source order, and components are values with a Render
// method. Concrete backends live in subpackages:
//   - htmldom: golang.org/x/net/html nodes, for server side rendering and tests
//   - jsdom: the browser DOM through syscall/js (js/wasm builds only)
//
// Every tag known to the generator has a handle type (HTMLDivElement,
// HTMLAnchorElement, ...) so that the root element of a markup expression
// can be returned with its specific type.
package dom
