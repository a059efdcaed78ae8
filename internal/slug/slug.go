// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// MaxLength bounds a derived slug.  bootcamps.slug is at least this wide.
const MaxLength = 100

// gosimple keeps underscores.
var separators = regexp.MustCompile(`[-_]+`)

// Derive lower-cases name and transliterates it into a URL-safe token.  Runs
// of characters outside [a-z0-9] collapse into a single "-" and leading or
// trailing separators are trimmed.  Results longer than MaxLength are cut at
// the last separator that fits.  Derive(Derive(s)) == Derive(s).
func Derive(name string) string {
	s := separators.ReplaceAllString(gosimple.MakeLang(name, "en"), "-")
	s = strings.Trim(s, "-")
	if len(s) <= MaxLength {
		return s
	}
	cut := s[:MaxLength]
	if s[MaxLength] != '-' {
		if i := strings.LastIndexByte(cut, '-'); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.Trim(cut, "-")
}
