package utils

import "strings"

// Slugify derives a URL-safe slug from a name: lowercase ASCII letters and
// digits, runs of anything else collapsed into single hyphens. Matches how
// category slugs were historically generated, so existing slugs stay stable.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
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
	return strings.TrimRight(b.String(), "-")
}
