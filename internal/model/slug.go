package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a stable ASCII identifier from a display name: accents
// stripped, every non-alphanumeric run collapsed to an underscore,
// lowercased. Falls back to "child" for names with no usable characters.
func Slugify(name string) string {
	ascii, _, err := transform.String(deaccent, name)
	if err != nil {
		ascii = name
	}
	var b strings.Builder
	lastUnderscore := true // suppress leading underscore
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "child"
	}
	return slug
}
