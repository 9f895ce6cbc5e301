package calendar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename derives a filesystem-safe download name from an event name:
// diacritics are folded away, anything non-alphanumeric collapses to a
// single dash, and the result is lowercased.
func Filename(eventName string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		eventName)
	if err != nil {
		folded = eventName
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "event"
	}

	return name + ".ics"
}
