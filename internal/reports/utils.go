package reports

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToTitleCase capitalises each word of s, e.g. for navigation labels built
// from page names.
func ToTitleCase(s string) string {
	if s == "" {
		return s
	}
	return cases.Title(language.Spanish).String(strings.Join(strings.Fields(s), " "))
}
