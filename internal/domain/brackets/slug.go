package brackets

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s/]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// Slug builds a URL-safe identifier from a team name:
// "St. Mary's (Burlington)" becomes "st-marys-burlington".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
