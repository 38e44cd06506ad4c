//go:build domsl_release

package schema

const checkInvariants = false
