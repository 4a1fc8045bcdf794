package phases

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// EditDistance measures how far b moved from a, in characters, over a
// line-level diff. Used to tell whether a correction actually changed the
// plan.
func EditDistance(a, b string) int {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	return dmp.DiffLevenshtein(diffs)
}
