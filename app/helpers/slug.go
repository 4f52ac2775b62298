package helpers

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SlugifyThemeName turns a theme name into its URL form: lowercase, trim,
// strip everything outside [a-z0-9\s-], collapse whitespace runs to single
// hyphens. The transform is lossy; capitalization and stripped punctuation
// cannot be recovered.
func SlugifyThemeName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = nonSlugChars.ReplaceAllString(s, "")
	return whitespaceRun.ReplaceAllString(s, "-")
}

// DeslugifyThemeName is a display fallback only. It does not reconstruct the
// original name.
func DeslugifyThemeName(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// ImagePublicID builds the upload public id for a named asset, e.g.
// "product-gift-box-a-image".
func ImagePublicID(prefix, name, suffix string) string {
	joined := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
	return prefix + "-" + joined + "-" + suffix
}
