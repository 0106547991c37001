package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NormalizeTitle returns title in NFC form with every run of Unicode
// whitespace collapsed to a single ASCII space and the ends trimmed.
func NormalizeTitle(title string) string {
	composed := norm.NFC.String(title)
	return strings.Join(strings.FieldsFunc(composed, unicode.IsSpace), " ")
}

// FoldTitle returns a case-insensitive comparison key for title.
func FoldTitle(title string) string {
	return folder.String(NormalizeTitle(title))
}
