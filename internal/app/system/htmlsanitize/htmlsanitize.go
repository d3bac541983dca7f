// Package htmlsanitize strips markup from user-supplied profile text.
// Profile fields are plain strings; anything that looks like HTML is
// removed before it reaches the store.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML tags and event attributes, returning the plain
// text content.
func Strip(s string) string {
	return strict.Sanitize(s)
}
