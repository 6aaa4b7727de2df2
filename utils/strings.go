package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordSeparators = strings.NewReplacer("_", " ", "-", " ")

// UpperCamelCase converts snake_case or kebab-case to UpperCamelCase.
// Example: "pl-minify" -> "PlMinify"
func UpperCamelCase(s string) string {
	s = wordSeparators.Replace(s)
	c := cases.Title(language.English)
	s = c.String(s)
	return strings.ReplaceAll(s, " ", "")
}
