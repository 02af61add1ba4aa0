package sdg

import (
	"regexp"
	"strings"
)

// Characters outside this alphabet break words but never join them. Hyphens
// survive so that compound keywords like "low-income" match literally.
var nonMatchable = regexp.MustCompile(`[^a-z0-9\s-]`)

// Normalize lowercases text, replaces characters outside the matching
// alphabet with spaces, and collapses whitespace runs to single spaces.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = nonMatchable.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize returns the set of words in the normalized text. Word order and
// repetition carry no weight in matching.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(Normalize(text)) {
		tokens[word] = true
	}
	return tokens
}
