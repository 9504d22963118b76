package utils

import (
	"strconv"
	"strings"
)

// StrToInt parses s, returning fallback for empty or malformed input.
func StrToInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// StrToBoolPtr parses optional boolean query/form values.
// Empty input yields nil so callers can tell "not provided" apart from false.
func StrToBoolPtr(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
