// Package normalize cleans extracted PDF text of layout artifacts before
// any downstream use.
package normalize

import "regexp"

// Runs of dots or dashes are almost always table-of-contents leaders or
// ruled lines, not content. The two marks share one class: removing them
// separately could splice surviving marks into a new run, so a second
// Clean would keep finding work.
var punctuationRuns = regexp.MustCompile(`[.\-]{2,}`)

// Clean removes repeated-punctuation scanning artifacts from extracted text.
// All other characters and whitespace are preserved. Empty input passes
// through unchanged; callers decide whether empty text is an error.
func Clean(raw string) string {
	if raw == "" {
		return raw
	}
	return punctuationRuns.ReplaceAllString(raw, "")
}
