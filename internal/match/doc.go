// Package match provides the fuzzy name matching behind "did you mean"
// suggestions for misspelled tags and attributes.
//
// Names are normalized (case folded, separators removed) and compared by
// Levenshtein distance. A candidate is only suggested when it is close
// enough that the typo is plausible.
package match
