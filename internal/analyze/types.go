package analyze

import (
	"context"
	"go/token"
	"go/types"
)

// Probe functions of the runtime package.
const (
	ProbeFunc          = "Probe"
	ProbeComponentFunc = "ProbeComponent"
)

// Probe is the probe of one .gox file.
type Probe struct {
	// Path is the absolute path of the generated file the probe stands in
	// for.
	Path string
	// Source is the path of the .gox file.
	Source  string
	Content []byte
}

// Request describes the package to check.
type Request struct {
	// Dir is the package directory.
	Dir string
	// RuntimePath is the import path of the dom runtime.
	RuntimePath string
	Probes      []Probe
}

// Error is a type error in a .gox file.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Result holds the types found by a checker.
type Result struct {
	// Node is the Node interface of the runtime package, or nil when no
	// probe refers to the runtime.
	Node *types.Interface
	// Sites maps a probe path and an invocation ID to the types of the
	// sites of the invocation. A type is nil when it could not be
	// determined.
	Sites map[string]map[int][]types.Type
	// Errors are the hard type errors reported in .gox files, in order.
	Errors []Error
}

// SiteTypes returns the site types of an invocation.
func (r *Result) SiteTypes(path string, id int) ([]types.Type, bool) {
	ts, ok := r.Sites[path][id]
	return ts, ok
}

// Checker type-checks the probes of a package.
type Checker interface {
	Check(ctx context.Context, req *Request) (*Result, error)
}
