package utils

import (
	"regexp"
	"strings"
)

// RemoveRegexp strips every case-insensitive match of the expression from the
// value and trims the leftover whitespace. An empty expression is a no-op.
func RemoveRegexp(value string, expression string) string {
	if expression == "" {
		return value
	}
	regex := regexp.MustCompile("(?i)" + expression)
	return strings.TrimSpace(regex.ReplaceAllString(value, ""))
}
