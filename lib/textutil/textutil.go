package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// catalog entries come with accented Spanish titles but users rarely
// type the accents when searching
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
)

func Fold(s string) string {
	s = strings.ToLower(accentFolder.Replace(s))
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// Terms splits a query into folded search terms.
func Terms(query string) []string {
	var out []string
	for _, t := range strings.Fields(query) {
		t = Fold(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
