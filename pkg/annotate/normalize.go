package annotate

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	nonKeyChars   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Normalize sanitizes an arbitrary annotation key into its canonical form:
// lower-cased, whitespace runs collapsed to a hyphen, anything outside [a-z0-9-] removed.
// Normalize(Normalize(k)) == Normalize(k).
func Normalize(key string) string {
	key = strings.ToLower(key)
	key = whitespaceRun.ReplaceAllString(key, "-")
	return nonKeyChars.ReplaceAllString(key, "")
}
