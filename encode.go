package ipac

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-ipac/table"
)

// Encoder writes IPAC tables to an output stream.
type Encoder struct {
	w    io.Writer
	opts []WriteOption
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...WriteOption) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the IPAC encoding of t to the stream.
//
// The full output is rendered in memory before the first byte reaches w, so
// a failed encode writes nothing.
func (e *Encoder) Encode(t *table.Table) error {
	o := writeOptions{}
	for _, opt := range e.opts {
		if err := opt(&o); err != nil {
			return err
		}
	}
	if t == nil {
		return fmt.Errorf("ipac: Encode(nil table)")
	}

	plans, err := planColumns(t, &o)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeMeta(&buf, t, &o); err != nil {
		return err
	}
	writeHeader(&buf, plans)
	if err := writeData(&buf, plans); err != nil {
		return err
	}

	_, err = e.w.Write(buf.Bytes())
	return err
}

// commentWidth is the comment payload limit per output line; with the
// backslash-space prefix a full comment line is at most 80 characters.
const commentWidth = 78

func writeMeta(buf *bytes.Buffer, t *table.Table, o *writeOptions) error {
	for _, comment := range t.Comments {
		// Embedded line breaks split a comment into separate comment
		// lines. Segments are trimmed the way a reader trims them, and
		// blank segments produce no output.
		for _, seg := range strings.FieldsFunc(comment, isLineBreak) {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			lines, wrapped := wrapComment(seg)
			if wrapped {
				o.warn(&CommentWrappedWarning{Comment: seg})
			}
			for _, l := range lines {
				buf.WriteString(l)
				buf.WriteByte('\n')
			}
		}
	}
	for _, kw := range t.Keywords {
		if !validKeywordName(kw.Name) {
			return fmt.Errorf("ipac: keyword name %q cannot be written", kw.Name)
		}
		if strings.ContainsAny(kw.Value, "\r\n") {
			return fmt.Errorf("ipac: keyword %q: value contains a line break", kw.Name)
		}
		fmt.Fprintf(buf, "\\%s=%s\n", kw.Name, quoteKeywordValue(kw.Value))
	}
	return nil
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// validKeywordName reports whether a keyword name parses back as a keyword:
// a nonempty run of word characters.
func validKeywordName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isWordChar(name[i]) {
			return false
		}
	}
	return true
}

// quoteKeywordValue wraps a value in double quotes when writing it bare
// would change it on a re-read: surrounding blanks would be trimmed away,
// and a value already wrapped in quotes would lose them.
func quoteKeywordValue(v string) string {
	if v != strings.TrimSpace(v) ||
		(len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)) {
		return `"` + v + `"`
	}
	return v
}

// wrapComment renders one comment as backslash-prefixed lines, splitting the
// payload every commentWidth runes. The split is purely positional, so the
// original rune sequence is preserved exactly across the wrapped lines.
func wrapComment(s string) (lines []string, wrapped bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, false
	}
	for len(runes) > commentWidth {
		lines = append(lines, `\ `+string(runes[:commentWidth]))
		runes = runes[commentWidth:]
		wrapped = true
	}
	return append(lines, `\ `+string(runes)), wrapped
}

// writeHeader emits all four header lines: names, types, units and null
// sentinels. Header cells are right-aligned and framed with the boundary
// marker.
func writeHeader(buf *bytes.Buffer, plans []colPlan) {
	writeHeaderRow(buf, plans, func(p colPlan) string { return p.name })
	writeHeaderRow(buf, plans, func(p colPlan) string { return string(p.typ) })
	writeHeaderRow(buf, plans, func(p colPlan) string { return p.unit })
	writeHeaderRow(buf, plans, func(p colPlan) string { return p.null })
}

func writeHeaderRow(buf *bytes.Buffer, plans []colPlan, cell func(colPlan) string) {
	buf.WriteByte(marker)
	for _, p := range plans {
		buf.WriteString(alignCell(cell(p), p.width, true))
		buf.WriteByte(marker)
	}
	buf.WriteByte('\n')
}

// writeData emits one line per row: a leading space, cells padded to their
// column width and joined by single spaces, and a trailing space. Numeric
// cells are right-aligned, char and date cells left-aligned. Every data
// line has the exact rune length of the header lines.
//
// A rendered line that a reader would not take back as this row is refused:
// a line whose first non-blank character is a backslash reads as metadata,
// and an all-blank line is skipped outright.
func writeData(buf *bytes.Buffer, plans []colPlan) error {
	var sb strings.Builder
	for r := 0; r < len(plans[0].cells); r++ {
		sb.Reset()
		sb.WriteByte(' ')
		for _, p := range plans {
			sb.WriteString(alignCell(p.cells[r], p.width, p.typ.Numeric()))
			sb.WriteByte(' ')
		}
		line := sb.String()
		switch {
		case strings.HasPrefix(strings.TrimLeft(line, " \t"), `\`):
			return fmt.Errorf("ipac: row %d starts with a backslash and would read back as metadata", r+1)
		case strings.TrimSpace(line) == "":
			return fmt.Errorf("ipac: row %d is entirely blank and would not read back", r+1)
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil
}
