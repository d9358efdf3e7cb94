// Package slug derives URL-safe identifiers from article titles and
// resolves collisions against already-stored slugs.
package slug

import (
	"context"
	"fmt"
	"strings"
)

// maxAttempts caps the collision probe so a pathological store
// cannot send the resolver into an unbounded loop.
const maxAttempts = 1000

// translit maps common accented Latin characters to ASCII
var translit = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'æ': "ae", 'œ': "oe", 'ß': "ss",
}

// Make derives a base slug from a title: lowercase, transliterate,
// strip non-alphanumerics, collapse separators to single hyphens.
func Make(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			if repl, ok := translit[r]; ok {
				b.WriteString(repl)
			} else {
				b.WriteByte('-')
			}
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// Exists reports whether a slug is already taken, ignoring the
// article identified by excludeID (so an edit does not collide
// with itself). excludeID may be empty.
type Exists func(ctx context.Context, slug, excludeID string) (bool, error)

// Resolve returns base if it is free, otherwise probes base-2,
// base-3, ... until an unused candidate is found.
func Resolve(ctx context.Context, base, excludeID string, exists Exists) (string, error) {
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 1; i <= maxAttempts; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i+1)
	}

	return "", fmt.Errorf("could not resolve a unique slug for %q after %d attempts", base, maxAttempts)
}
