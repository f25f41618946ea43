// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts arbitrary text to a URL-safe slug: lowercase, whitespace
// collapsed to single hyphens, non-word characters stripped, repeated hyphens
// collapsed, no leading or trailing hyphen. Never fails.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		}
		// Anything else (punctuation, symbols, non-ASCII) is dropped.
	}
	return strings.Trim(b.String(), "-")
}

// Unique returns base if it is not already taken, otherwise probes
// base-1, base-2, ... until a free value is found.
func Unique(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}

	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
