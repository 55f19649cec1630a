package ipac

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-ipac/table"
)

// Decoder reads an IPAC table from an input stream.
type Decoder struct {
	r    io.Reader
	opts []ReadOption
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
//
// Functional options can be provided to configure the decoding process,
// such as selecting a boundary policy with WithDefinition.
func NewDecoder(r io.Reader, opts ...ReadOption) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads an IPAC table from its input and returns it.
//
// See the documentation for Unmarshal for details about how the text is
// interpreted.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode() (*table.Table, error) {
	if d.r == nil {
		return nil, fmt.Errorf("ipac: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}

	o := readOptions{}
	for _, opt := range d.opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return decode(data, &o)
}

// line is one physical input line with its 1-based number. The text carries
// no line terminator; a trailing carriage return is already stripped.
type line struct {
	num  int
	text string
}

func splitLines(data []byte) []line {
	raw := strings.Split(string(data), "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	lines := make([]line, len(raw))
	for i, s := range raw {
		lines[i] = line{num: i + 1, text: strings.TrimSuffix(s, "\r")}
	}
	return lines
}

// colDef is one column as declared by the header block, with the sentinel
// already resolved to its effective value.
type colDef struct {
	name string
	typ  table.Type
	unit string
	null string
}

func decode(data []byte, o *readOptions) (*table.Table, error) {
	var (
		headerLines []line
		dataLines   []line
		comments    []string
		keywords    []table.Keyword
	)

	inData := false
	for _, ln := range splitLines(data) {
		trimmed := strings.TrimRight(ln.text, " \t")
		switch {
		case strings.TrimSpace(ln.text) == "":
			continue
		case isMetaLine(ln.text):
			if len(headerLines) > 0 {
				// Metadata belongs before the header; later backslash
				// lines are passed over.
				continue
			}
			kw, isKeyword, comment := parseMetaLine(ln.text)
			if isKeyword {
				keywords = append(keywords, kw)
			} else if comment != "" {
				comments = append(comments, comment)
			}
		case isHeaderLine(trimmed):
			if inData {
				// Marker-framed lines between data rows are visual
				// separators, not rows.
				continue
			}
			headerLines = append(headerLines, line{num: ln.num, text: trimmed})
		default:
			if len(headerLines) == 0 {
				return nil, &HeaderError{Line: ln.num, Message: "data line before any header line"}
			}
			inData = true
			dataLines = append(dataLines, ln)
		}
	}

	defs, spans, err := parseHeader(headerLines, o.definition)
	if err != nil {
		return nil, err
	}

	cols := make([]*table.Column, len(defs))
	for i, def := range defs {
		c, err := table.NewColumn(def.name, def.typ)
		if err != nil {
			return nil, err
		}
		c.Unit = def.unit
		c.Null = def.null
		cols[i] = c
	}
	t, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	t.Comments = comments
	for _, kw := range keywords {
		t.SetKeyword(kw.Name, kw.Value)
	}

	for _, ln := range dataLines {
		if err := decodeRow(ln, spans, defs, cols); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// isHeaderLine reports whether a right-trimmed line is part of the header
// block: it must begin and end with the boundary marker.
func isHeaderLine(s string) bool {
	return len(s) >= 2 && s[0] == marker && s[len(s)-1] == marker
}

func isMetaLine(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t"), `\`)
}

// parseMetaLine splits a backslash line into a keyword or a comment. A
// keyword has the form \name=value where the name is a run of word
// characters starting right after the backslash; one level of surrounding
// double quotes is removed from the value. A backslash followed by a blank
// is always a comment, with surrounding blanks dropped.
func parseMetaLine(s string) (kw table.Keyword, isKeyword bool, comment string) {
	body := strings.TrimPrefix(strings.TrimLeft(s, " \t"), `\`)
	if name, value, ok := splitKeyword(body); ok {
		return table.Keyword{Name: name, Value: unquote(value)}, true, ""
	}
	return table.Keyword{}, false, strings.TrimSpace(body)
}

func splitKeyword(body string) (name, value string, ok bool) {
	i := 0
	for i < len(body) && isWordChar(body[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	rest := strings.TrimLeft(body[i:], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	return body[:i], strings.TrimSpace(rest[1:]), true
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// parseHeader interprets one to four marker-framed lines as names, types,
// units and null sentinels, and resolves the column spans used to slice
// data lines.
func parseHeader(header []line, def Definition) ([]colDef, []colSpan, error) {
	if len(header) == 0 {
		return nil, nil, &HeaderError{Message: "at least one header line beginning and ending with | is required"}
	}
	if len(header) > 4 {
		return nil, nil, &HeaderError{Line: header[4].num, Message: fmt.Sprintf("expected at most 4 header lines, got %d", len(header))}
	}

	names := splitHeaderCells(header[0].text)
	for _, ln := range header[1:] {
		if cells := splitHeaderCells(ln.text); len(cells) != len(names) {
			return nil, nil, &HeaderError{Line: ln.num, Message: fmt.Sprintf("header line has %d cells, want %d", len(cells), len(names))}
		}
	}

	defs := make([]colDef, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, raw := range names {
		name := strings.Trim(raw, " \t-")
		if name == "" {
			return nil, nil, &HeaderError{Line: header[0].num, Message: fmt.Sprintf("column %d has an empty name", i+1)}
		}
		if _, ok := seen[name]; ok {
			return nil, nil, &HeaderError{Line: header[0].num, Message: fmt.Sprintf("duplicate column name %q", name)}
		}
		seen[name] = struct{}{}
		defs[i].name = name
		defs[i].typ = table.Char
	}

	if len(header) >= 2 {
		for i, raw := range splitHeaderCells(header[1].text) {
			keyword := strings.Trim(raw, " \t-")
			typ, ok := parseTypeKeyword(keyword)
			if !ok {
				return nil, nil, &HeaderError{Line: header[1].num, Message: fmt.Sprintf("unknown type %q for column %q", keyword, defs[i].name)}
			}
			defs[i].typ = typ
		}
	}
	if len(header) >= 3 {
		for i, raw := range splitHeaderCells(header[2].text) {
			defs[i].unit = strings.TrimSpace(raw)
		}
	}
	if len(header) == 4 {
		for i, raw := range splitHeaderCells(header[3].text) {
			defs[i].null = strings.TrimSpace(raw)
		}
	}
	// A blank sentinel cell means unspecified; the type default applies.
	for i := range defs {
		if defs[i].null == "" {
			defs[i].null = defaultNull(defs[i].typ)
		}
	}

	return defs, resolveSpans(markerOffsets(header[0].text), def), nil
}

// splitHeaderCells returns the cells of a marker-framed header line, without
// the framing markers.
func splitHeaderCells(s string) []string {
	parts := strings.Split(s, "|")
	return parts[1 : len(parts)-1]
}

// colTypes are the recognized type keywords in match order. A header cell is
// matched as a case-insensitive prefix of the keyword, so "i" and "int" both
// mean integer. Order matters for shared prefixes: "d" means double while
// "da" means date.
var colTypes = []struct {
	keyword string
	typ     table.Type
}{
	{"integer", table.Int},
	{"long", table.Long},
	{"double", table.Double},
	{"float", table.Float},
	{"real", table.Double},
	{"char", table.Char},
	{"date", table.Date},
}

func parseTypeKeyword(raw string) (table.Type, bool) {
	folded := strings.ToLower(raw)
	if folded == "" {
		return "", false
	}
	for _, ct := range colTypes {
		if strings.HasPrefix(ct.keyword, folded) {
			return ct.typ, true
		}
	}
	return "", false
}

// decodeRow slices one data line by the resolved spans and appends one cell
// per column. Spans index runes, not bytes.
func decodeRow(ln line, spans []colSpan, defs []colDef, cols []*table.Column) error {
	runes := []rune(ln.text)
	for i, sp := range spans {
		if sp.end > len(runes) {
			return &TruncatedLineError{Line: ln.num, Column: defs[i].name, Need: sp.end, Have: len(runes)}
		}
		text := strings.TrimSpace(string(runes[sp.start:sp.end]))
		if err := appendCell(cols[i], defs[i], text, ln.num); err != nil {
			return err
		}
	}
	return nil
}

// appendCell stores one trimmed cell. The sentinel comparison runs before
// type conversion, so a column whose sentinel looks numeric still records a
// missing cell.
func appendCell(col *table.Column, def colDef, text string, lineNum int) error {
	if text == def.null {
		col.AppendMissing()
		return nil
	}
	switch def.typ {
	case table.Int, table.Long:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return &CellTypeError{Line: lineNum, Column: def.name, Type: def.typ, Value: text}
		}
		return col.Append(n)
	case table.Float, table.Double:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &CellTypeError{Line: lineNum, Column: def.name, Type: def.typ, Value: text}
		}
		return col.Append(f)
	default:
		return col.Append(text)
	}
}
