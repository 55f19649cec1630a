package ipac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkerOffsets(t *testing.T) {
	require.Equal(t, []int{0, 7, 15}, markerOffsets("|   a  |   b   |"))
	require.Nil(t, markerOffsets("no markers here"))

	// Offsets count runes, not bytes.
	require.Equal(t, []int{0, 3, 5}, markerOffsets("|éé|a|"))
}

func TestResolveSpans(t *testing.T) {
	// The classic ambiguity case: every B belongs to a column, every A
	// sits exactly under a header marker.
	markers := markerOffsets("|   a  |   b   |")
	const data = "ABBBBBBABBBBBBBA"

	slice := func(spans []colSpan) []string {
		out := make([]string, len(spans))
		for i, sp := range spans {
			out[i] = data[sp.start:sp.end]
		}
		return out
	}

	t.Run("Ignore", func(t *testing.T) {
		require.Equal(t, []string{"BBBBBB", "BBBBBBB"}, slice(resolveSpans(markers, Ignore)))
	})

	t.Run("Left", func(t *testing.T) {
		require.Equal(t, []string{"BBBBBBA", "BBBBBBBA"}, slice(resolveSpans(markers, Left)))
	})

	t.Run("Right", func(t *testing.T) {
		require.Equal(t, []string{"ABBBBBB", "ABBBBBBB"}, slice(resolveSpans(markers, Right)))
	})

	t.Run("Widths", func(t *testing.T) {
		spans := resolveSpans(markers, Ignore)
		require.Equal(t, 6, spans[0].width())
		require.Equal(t, 7, spans[1].width())

		// Left and Right both hand out every marker position once, so
		// the widths they produce are equal column by column.
		left := resolveSpans(markers, Left)
		right := resolveSpans(markers, Right)
		for i := range left {
			require.Equal(t, left[i].width(), right[i].width())
			require.Equal(t, spans[i].width()+1, left[i].width())
		}
	})

	t.Run("Partition", func(t *testing.T) {
		// Column widths plus the marker positions no column owns add up
		// to the header length, whichever way boundaries are assigned.
		// Ignore leaves every marker unowned, Left only the first, Right
		// only the last.
		unowned := map[Definition]int{Ignore: len(markers), Left: 1, Right: 1}
		for def, free := range unowned {
			total := free
			for _, sp := range resolveSpans(markers, def) {
				total += sp.width()
			}
			require.Equal(t, len("|   a  |   b   |"), total, "definition %s", def)
		}
	})
}
