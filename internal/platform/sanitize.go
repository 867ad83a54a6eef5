package platform

import "strings"

// Characters illegal in common filesystem paths
const illegalFilenameChars = `\/*?:"<>|`

// SanitizeFilename removes characters that are illegal in common filesystem
// paths from a title string. No length truncation, no Unicode normalization,
// no collision handling: two titles that sanitize to the same string will
// overwrite one another's output file.
func SanitizeFilename(name string) string {
	if !strings.ContainsAny(name, illegalFilenameChars) {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(illegalFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
