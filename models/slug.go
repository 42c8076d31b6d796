package models

import "strings"

// Slugify derives a stable identifier from a display name: lowercase,
// non-alphanumeric runs collapsed to a single hyphen, edges trimmed.
// It is idempotent, so re-slugging an existing id is harmless.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
