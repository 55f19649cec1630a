// Package table holds the in-memory model the ipac codec reads into and
// writes from: an ordered set of named, typed columns with a per-cell
// missing flag, plus table-level comments and keywords.
//
// The model enforces its own invariants (non-empty, unique column names and
// equal column lengths) so the codec can rely on any *Table it is handed.
package table

import "fmt"

// Type is the declared type keyword of a column.
type Type string

const (
	Int    Type = "int"    // 32-bit integer keyword; values stored as int64
	Long   Type = "long"   // 64-bit integer keyword; values stored as int64
	Float  Type = "float"  // 32-bit float keyword; values stored as float64
	Double Type = "double" // 64-bit float keyword; values stored as float64
	Char   Type = "char"   // literal text
	Date   Type = "date"   // opaque date text; format validation is the caller's
)

// Valid reports whether t is one of the declared type keywords.
func (t Type) Valid() bool {
	switch t {
	case Int, Long, Float, Double, Char, Date:
		return true
	}
	return false
}

// Numeric reports whether values of t are numbers rather than text.
func (t Type) Numeric() bool {
	switch t {
	case Int, Long, Float, Double:
		return true
	}
	return false
}

type cell struct {
	v       any
	missing bool
}

// Column is a single named, typed sequence of cells.
//
// Unit and Null carry the header metadata verbatim: an empty Null means "not
// specified" and leaves sentinel selection to the codec's type default.
type Column struct {
	Name string
	Type Type
	Unit string
	Null string

	cells []cell
}

// NewColumn returns an empty column. The name must be non-empty and the type
// one of the declared keywords.
func NewColumn(name string, typ Type) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("table: column name must not be empty")
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("table: unknown column type %q", typ)
	}
	return &Column{Name: name, Type: typ}, nil
}

// Len returns the number of cells in the column.
func (c *Column) Len() int { return len(c.cells) }

// Append adds one present value. The value must match the column type:
// int or int64 for integer kinds, float32 or float64 for float kinds, and
// string for char and date. Integer and float values are widened to int64
// and float64 respectively.
func (c *Column) Append(v any) error {
	switch c.Type {
	case Int, Long:
		switch n := v.(type) {
		case int:
			c.cells = append(c.cells, cell{v: int64(n)})
		case int64:
			c.cells = append(c.cells, cell{v: n})
		default:
			return fmt.Errorf("table: column %q (%s) expects int or int64, got %T", c.Name, c.Type, v)
		}
	case Float, Double:
		switch f := v.(type) {
		case float32:
			c.cells = append(c.cells, cell{v: float64(f)})
		case float64:
			c.cells = append(c.cells, cell{v: f})
		default:
			return fmt.Errorf("table: column %q (%s) expects float32 or float64, got %T", c.Name, c.Type, v)
		}
	case Char, Date:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("table: column %q (%s) expects string, got %T", c.Name, c.Type, v)
		}
		c.cells = append(c.cells, cell{v: s})
	default:
		return fmt.Errorf("table: column %q has unknown type %q", c.Name, c.Type)
	}
	return nil
}

// AppendMissing adds one missing cell.
func (c *Column) AppendMissing() {
	c.cells = append(c.cells, cell{missing: true})
}

// Value returns the value at row i: int64, float64, or string depending on
// the column type, or nil when the cell is missing.
func (c *Column) Value(i int) any {
	if c.cells[i].missing {
		return nil
	}
	return c.cells[i].v
}

// Missing reports whether the cell at row i is missing.
func (c *Column) Missing(i int) bool { return c.cells[i].missing }

// Keyword is one `\name=value` metadata entry.
type Keyword struct {
	Name  string
	Value string
}

// Table is an ordered collection of equal-length columns with table-level
// metadata. Comments render as `\ text` lines, Keywords as `\name=value`
// lines, both ahead of the header block.
type Table struct {
	Comments []string
	Keywords []Keyword

	cols []*Column
}

// New builds a table from cols. Column names must be unique (exact
// comparison) and all columns must have the same length.
func New(cols ...*Column) (*Table, error) {
	t := &Table{}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a column, rejecting name conflicts and length mismatches.
func (t *Table) AddColumn(c *Column) error {
	if c.Name == "" {
		return fmt.Errorf("table: column name must not be empty")
	}
	for _, existing := range t.cols {
		if existing.Name == c.Name {
			return fmt.Errorf("table: duplicate column name %q", c.Name)
		}
	}
	if len(t.cols) > 0 && c.Len() != t.cols[0].Len() {
		return fmt.Errorf("table: column %q has %d cells, want %d", c.Name, c.Len(), t.cols[0].Len())
	}
	t.cols = append(t.cols, c)
	return nil
}

// Columns returns the columns in declaration order. The slice is shared with
// the table; callers must not reorder it.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the column with the given name, or nil when absent.
func (t *Table) Column(name string) *Column {
	for _, c := range t.cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Len returns the row count, zero for a table with no columns.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// SetKeyword sets a keyword, replacing the value in place when the name is
// already present and appending otherwise.
func (t *Table) SetKeyword(name, value string) {
	for i := range t.Keywords {
		if t.Keywords[i].Name == name {
			t.Keywords[i].Value = value
			return
		}
	}
	t.Keywords = append(t.Keywords, Keyword{Name: name, Value: value})
}
