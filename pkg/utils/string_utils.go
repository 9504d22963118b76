package utils

import (
	"math"
	"regexp"
	"strings"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a title:
// "Fresh Basil Pesto!" -> "fresh-basil-pesto".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WordsPerMinute is the reading speed used for blog reading time.
const WordsPerMinute = 200

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// ReadingTime returns the minutes needed to read content, rounded up, never below 1.
// Markup is ignored when counting words.
func ReadingTime(content string) int {
	words := len(strings.Fields(htmlTag.ReplaceAllString(content, " ")))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
