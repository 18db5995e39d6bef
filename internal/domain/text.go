package domain

import (
	"strings"
	"unicode/utf8"
)

// length counts characters rather than bytes.
func length(s string) int {
	return utf8.RuneCountInString(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
