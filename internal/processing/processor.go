// Package processing normalizes free text entered with a deed.
package processing

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	controls   = regexp.MustCompile(`[\p{Cc}\p{Cf}]+`)
)

// NormalizeDescription decodes HTML entities, drops control characters and squeezes
// whitespace, so classification and duplicate detection see the text the contributor meant.
func NormalizeDescription(input string) string {
	if input == "" {
		return ""
	}
	decoded := html.UnescapeString(input)
	decoded = whitespace.ReplaceAllString(decoded, " ")
	decoded = controls.ReplaceAllString(decoded, "")
	return strings.TrimSpace(decoded)
}

// NormalizeLocation tidies a "City, Country" string: single spaces, one space after each
// comma, no empty segments.
func NormalizeLocation(input string) string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(whitespace.ReplaceAllString(part, " "))
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}

// Excerpt returns the first sentence of text, cut to maxWords words with an ellipsis.
// maxWords <= 0 keeps the whole sentence.
func Excerpt(text string, maxWords int) string {
	if text == "" {
		return ""
	}

	sentence := text
	if end := strings.IndexAny(text, ".!?"); end > 0 {
		sentence = text[:end]
	}

	words := strings.Fields(sentence)
	if len(words) == 0 {
		return ""
	}
	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}
