package common

import (
	"path"
	"strconv"
	"strings"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	alias := path.Base(pkgPath)
	// Major version suffixes are not package names: example.com/dom/v2 is "dom".
	if isMajorVersion(alias) {
		if dir := path.Dir(pkgPath); dir != "." && dir != "/" {
			alias = path.Base(dir)
		}
	}

	return strings.ReplaceAll(alias, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	n, err := strconv.Atoi(s[1:])

	return err == nil && n > 1
}
