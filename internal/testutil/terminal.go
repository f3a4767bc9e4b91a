package testutil

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes terminal escape sequences from rendered output.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// ContainsInOrder reports whether every expected string occurs in output,
// each after the previous one.
func ContainsInOrder(output string, expected ...string) bool {
	rest := output
	for _, exp := range expected {
		i := strings.Index(rest, exp)
		if i < 0 {
			return false
		}
		rest = rest[i+len(exp):]
	}
	return true
}
