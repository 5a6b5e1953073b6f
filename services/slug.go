package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonSlug = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify lowercases the input and joins letter/digit runs with single
// hyphens. Example: "Lada Автоваз" -> "lada-автоваз".
func Slugify(s string) string {
	base := strings.ToLower(strings.TrimSpace(s))
	base = nonSlug.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}

// ListingSlug builds a unique listing slug without a separate uniqueness
// check: the millisecond timestamp suffix keeps collisions out.
func ListingSlug(makeSlug, modelSlug string, year int, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d-%d",
		Slugify(makeSlug), Slugify(modelSlug), year, now.UnixMilli())
}
