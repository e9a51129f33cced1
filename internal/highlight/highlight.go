// internal/highlight/highlight.go
package highlight

import (
	"sort"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

// Markers wrapped around each matched substring. Angle quotes survive
// plain terminal output and cannot collide with regex metacharacters
// the way <b> style tags would.
const (
	OpenMark  = "⟪"
	CloseMark = "⟫"
)

// Annotate renders subject with every match span wrapped in markers.
// Spans are spliced right-to-left (descending Start) so an insertion
// never shifts the offsets of spans still to be processed. All offsets
// are rune offsets, matching the backend's character positions.
//
// Overlapping or nested spans produce nested or garbled markers; the
// match engine normally returns disjoint spans and overlap rendering is
// intentionally left as-is. Spans reaching outside the subject are
// clamped to its bounds. An empty match list yields an empty string:
// there is nothing to highlight.
func Annotate(subject string, matches []core.MatchSpan) string {
	if len(matches) == 0 {
		return ""
	}

	spans := make([]core.MatchSpan, len(matches))
	copy(spans, matches)
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start > spans[j].Start
	})

	out := []rune(subject)
	open := []rune(OpenMark)
	clos := []rune(CloseMark)
	n := len(out)

	for _, span := range spans {
		start, end := span.Start, span.End
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start > end {
			continue
		}

		spliced := make([]rune, 0, len(out)+len(open)+len(clos))
		spliced = append(spliced, out[:start]...)
		spliced = append(spliced, open...)
		spliced = append(spliced, out[start:end]...)
		spliced = append(spliced, clos...)
		spliced = append(spliced, out[end:]...)
		out = spliced
	}

	return string(out)
}
