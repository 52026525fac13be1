package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips all HTML from user-authored text (habit names and
// descriptions, completion notes, display names).
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
