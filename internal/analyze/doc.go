// Package analyze type-checks probe files and reports the type of every
// site of every invocation.
//
// A probe is a .gox file with each invocation replaced by a call to the
// runtime's Probe or ProbeComponent function, listing the sites of the
// invocation as arguments. The probe is type-checked in place of the file
// that will be generated, then the calls are found again through the type
// information and the types of their arguments are read.
//
// Two checkers exist:
//   - PackagesChecker: golang.org/x/tools/go/packages with overlays
//   - SourceChecker: plain go/types over the files of the directory
package analyze
