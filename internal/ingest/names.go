package ingest

import (
	"regexp"
	"strings"
)

var (
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	honourificRe = regexp.MustCompile(`(?i)^(The\s+)?(Right\s+)?Hon\.?\s*`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// CleanName strips the parenthesised constituency and honourific
// prefixes from a member name as rendered on vote and committee pages,
// and collapses whitespace.
func CleanName(name string) string {
	name = parenRe.ReplaceAllString(name, "")
	name = honourificRe.ReplaceAllString(name, "")
	return spaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
}

// firstLastKey reduces a full name to its first and last word, the
// fallback key for members listed with or without middle initials.
func firstLastKey(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + " " + parts[len(parts)-1]
}
