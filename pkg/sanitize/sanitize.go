package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every element and attribute
var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips all markup from user input and returns unescaped text.
// Output is meant to be escaped again by whatever renders it.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
