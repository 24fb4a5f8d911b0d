package slugify

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts a title into a URL-safe lowercase slug. Accented
// characters are transliterated to their ASCII base form so that legacy
// links like "Éducation & Tech" -> "education-tech" keep working.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// MakeUnique derives a slug from base that satisfies the exists check,
// appending -1, -2, ... until a free candidate is found. The exists
// callback reports whether a candidate is already taken.
func MakeUnique(base string, maxLen int, exists func(string) (bool, error)) (string, error) {
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
		if len(candidate) > maxLen {
			candidate = candidate[:maxLen]
		}
	}
}
