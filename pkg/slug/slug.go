// Package slug builds URL-safe identifiers from titles.
package slug

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s_-]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
)

// ExistsFunc reports whether a candidate slug is already taken by another record.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Make lower-cases the title, folds accents to ASCII and joins words with hyphens.
func Make(title string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	s := strings.ToLower(b.String())
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fallback is used when a title produces no slug characters at all.
func Fallback() string {
	return fmt.Sprintf("post-%d", rand.IntN(9000)+1000)
}

// Unique returns the first of base, base-1, base-2, ... that exists reports as free.
func Unique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Make(title)
	if base == "" {
		base = Fallback()
	}

	candidate := base
	for n := 1; ; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
