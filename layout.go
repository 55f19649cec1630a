package ipac

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-ipac/table"
)

// defaultNull is the sentinel used when a column declares none: "null" for
// every non-char type, the empty string for char.
func defaultNull(typ table.Type) string {
	if typ == table.Char {
		return ""
	}
	return "null"
}

// colPlan is the rendered form of one column: header strings, every data
// cell already rendered as text, and the final width. Widths are rune
// counts, the same unit the reader slices data lines in. A plan is computed
// once per write and not mutated afterwards.
type colPlan struct {
	name  string
	typ   table.Type
	unit  string
	null  string   // effective sentinel
	cells []string // rendered data cells, missing cells as the sentinel
	width int
}

// planColumns applies the include/exclude filters, validates the surviving
// names, renders every cell, and sizes each column independently as the
// maximum rune length across its name, type keyword, unit, sentinel, and
// rendered cells.
func planColumns(t *table.Table, o *writeOptions) ([]colPlan, error) {
	cols := filterColumns(t.Columns(), o.includeNames, o.excludeNames)
	if len(cols) == 0 {
		return nil, fmt.Errorf("ipac: no columns selected for writing")
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	if err := checkNames(names, o.dbms); err != nil {
		return nil, err
	}

	rows := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != rows {
			return nil, fmt.Errorf("ipac: column %q has %d cells, want %d", c.Name, c.Len(), rows)
		}
	}

	plans := make([]colPlan, len(cols))
	for i, c := range cols {
		p, err := planColumn(c, effectiveNull(c, o.nullValues))
		if err != nil {
			return nil, err
		}
		plans[i] = p
	}
	return plans, nil
}

// filterColumns keeps the table's column order. Exclusion runs after
// inclusion, so a name in both sets is dropped. Filter names with no
// matching column are ignored.
func filterColumns(cols []*table.Column, include, exclude []string) []*table.Column {
	kept := cols
	if len(include) > 0 {
		want := make(map[string]struct{}, len(include))
		for _, n := range include {
			want[n] = struct{}{}
		}
		kept = nil
		for _, c := range cols {
			if _, ok := want[c.Name]; ok {
				kept = append(kept, c)
			}
		}
	}
	if len(exclude) > 0 {
		drop := make(map[string]struct{}, len(exclude))
		for _, n := range exclude {
			drop[n] = struct{}{}
		}
		var filtered []*table.Column
		for _, c := range kept {
			if _, ok := drop[c.Name]; !ok {
				filtered = append(filtered, c)
			}
		}
		kept = filtered
	}
	return kept
}

// effectiveNull resolves the sentinel for one column: a per-column override
// wins, then the column's declared sentinel, then the type default. The
// sentinel is trimmed first, since that is the form a reader compares cells
// against.
func effectiveNull(c *table.Column, overrides map[string]string) string {
	if v, ok := overrides[c.Name]; ok {
		return strings.TrimSpace(v)
	}
	if null := strings.TrimSpace(c.Null); null != "" {
		return null
	}
	return defaultNull(c.Type)
}

func planColumn(c *table.Column, null string) (colPlan, error) {
	// NewColumn checked the type, but the field is exported and a type
	// keyword the reader does not know must never be written.
	if !c.Type.Valid() {
		return colPlan{}, fmt.Errorf("ipac: column %q has unknown type %q", c.Name, c.Type)
	}
	unit := strings.TrimSpace(c.Unit)
	if err := checkHeaderText(c.Name, "unit", unit); err != nil {
		return colPlan{}, err
	}
	if err := checkHeaderText(c.Name, "null value", null); err != nil {
		return colPlan{}, err
	}
	// A blank sentinel cell reads back as "unspecified", which only the
	// char default survives.
	if null == "" && c.Type != table.Char {
		return colPlan{}, fmt.Errorf("ipac: column %q: a %s column needs a visible null sentinel", c.Name, c.Type)
	}

	p := colPlan{name: c.Name, typ: c.Type, unit: unit, null: null}
	p.cells = make([]string, c.Len())
	for i := range p.cells {
		if c.Missing(i) {
			p.cells[i] = null
			continue
		}
		v, ok := renderValue(c.Type, c.Value(i))
		if !ok {
			return colPlan{}, fmt.Errorf("ipac: column %q: cell %d holds %T, not a %s value",
				c.Name, i, c.Value(i), c.Type)
		}
		if err := checkCellText(c.Name, v); err != nil {
			return colPlan{}, err
		}
		if !c.Type.Numeric() && strings.TrimSpace(v) != v {
			return colPlan{}, fmt.Errorf("ipac: column %q: value %q has surrounding blanks, which do not survive a read", c.Name, v)
		}
		if v == null {
			return colPlan{}, fmt.Errorf("ipac: column %q: value %q collides with the null sentinel", c.Name, v)
		}
		p.cells[i] = v
	}

	p.width = utf8.RuneCountInString(p.name)
	for _, s := range []string{string(p.typ), p.unit, p.null} {
		if w := utf8.RuneCountInString(s); w > p.width {
			p.width = w
		}
	}
	for _, s := range p.cells {
		if w := utf8.RuneCountInString(s); w > p.width {
			p.width = w
		}
	}
	return p, nil
}

// renderValue produces the canonical text for one present value: base 10 for
// the integer types, the shortest decimal that round-trips at the declared
// precision for the floating types, the literal text for char and date. The
// ok result is false when the stored value does not match the declared type,
// which happens when a column's Type field was changed after cells were
// appended.
func renderValue(typ table.Type, v any) (string, bool) {
	switch typ {
	case table.Int, table.Long:
		n, ok := v.(int64)
		if !ok {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case table.Float:
		f, ok := v.(float64)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'g', -1, 32), true
	case table.Double:
		f, ok := v.(float64)
		if !ok {
			return "", false
		}
		return strconv.FormatFloat(f, 'g', -1, 64), true
	default:
		s, ok := v.(string)
		return s, ok
	}
}

// checkHeaderText rejects strings that would break the header framing.
func checkHeaderText(col, what, s string) error {
	if strings.ContainsAny(s, "|\r\n") {
		return fmt.Errorf("ipac: column %q: %s %q contains the column separator or a line break", col, what, s)
	}
	return nil
}

// checkCellText rejects data values that would break the line structure.
// The column separator is fine inside a data cell: rows are sliced by
// position, not by separator.
func checkCellText(col, s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("ipac: column %q: value %q contains a line break", col, s)
	}
	return nil
}

// alignCell pads s with spaces to width runes: right-aligned for numeric
// cells, left-aligned for textual ones.
func alignCell(s string, width int, rightAlign bool) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	if rightAlign {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
