package ipac

// The boundary marker framing header cells and the outer edges of header
// lines. Between two adjacent columns there is exactly one marker position,
// and its ownership is what a Definition decides.
const marker = '|'

// colSpan is the half-open rune range [start, end) of one column within a
// data line. Spans are resolved once per read and reused for every data line.
type colSpan struct {
	start int
	end   int
}

func (s colSpan) width() int { return s.end - s.start }

// markerOffsets returns the rune offsets of every boundary marker in a
// header line.
func markerOffsets(s string) []int {
	var offsets []int
	i := 0
	for _, r := range s {
		if r == marker {
			offsets = append(offsets, i)
		}
		i++
	}
	return offsets
}

// resolveSpans turns marker offsets into one span per column under the given
// definition. markers holds at least two ascending offsets; the span count is
// len(markers)-1.
//
// The tentative span of column k runs marker-to-marker, so adjacent spans
// share one marker position. The definition assigns every marker position to
// at most one neighbor: Ignore leaves all of them unowned, Left hands each to
// the column on its left, Right to the column on its right. A claim by a
// neighbor that does not exist (left of the first marker, right of the last)
// lapses, which is why the outer edges only move under the policy that has
// an owner for them.
func resolveSpans(markers []int, def Definition) []colSpan {
	n := len(markers) - 1
	spans := make([]colSpan, n)
	for k := 0; k < n; k++ {
		spans[k] = colSpan{start: markers[k] + 1, end: markers[k+1]}
	}
	switch def {
	case Left:
		for k := range spans {
			spans[k].end++
		}
	case Right:
		for k := range spans {
			spans[k].start--
		}
	}
	return spans
}
