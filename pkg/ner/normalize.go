package ner

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches runs of Unicode whitespace, including the
	// \x1c-\x1f separators and NEL.
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r\x1c-\x1f\x85\p{Z}]+`)

	// letterTerminal matches an ASCII letter immediately followed by a
	// sentence terminal mark.
	letterTerminal = regexp.MustCompile(`([a-zA-Z])([.!?])`)
)

// Normalize canonicalizes whitespace and sentence punctuation spacing before
// the text is handed to the inference engine. Runs of Unicode whitespace
// collapse to a single ASCII space, the result is trimmed, and a space is
// inserted between a letter and a directly following '.', '!' or '?'.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.Trim(whitespaceRun.ReplaceAllString(text, " "), " ")
	return letterTerminal.ReplaceAllString(text, "$1 $2")
}
