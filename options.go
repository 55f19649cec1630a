package ipac

import "fmt"

// Definition selects the owner of the boundary-marker positions between
// adjacent columns when data lines are sliced.
//
// Data rows are usually written straight through the marker positions of the
// header, so a character sitting exactly under a marker is ambiguous: it may
// belong to the column on either side, or to neither.
type Definition int

const (
	// Ignore drops every marker position; both neighbors lose the shared
	// character. This is the current convention and the default.
	Ignore Definition = iota
	// Left assigns each marker position to the column on its left.
	Left
	// Right assigns each marker position to the column on its right.
	Right
)

func (d Definition) String() string {
	switch d {
	case Ignore:
		return "ignore"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("definition(%d)", int(d))
}

// ReadOption configures a Decoder or a call to Unmarshal.
type ReadOption func(*readOptions) error

type readOptions struct {
	definition Definition
}

// WithDefinition returns a ReadOption that sets the boundary ownership
// policy applied when data lines are sliced into column values.
//
// The default is Ignore.
func WithDefinition(d Definition) ReadOption {
	return func(o *readOptions) error {
		switch d {
		case Ignore, Left, Right:
			o.definition = d
			return nil
		}
		return fmt.Errorf("ipac: definition must be Ignore, Left or Right")
	}
}

// WriteOption configures an Encoder or a call to Marshal.
type WriteOption func(*writeOptions) error

type writeOptions struct {
	dbms         bool
	includeNames []string
	excludeNames []string
	nullValues   map[string]string
	onWarning    func(error)
}

func (o *writeOptions) warn(err error) {
	if o.onWarning != nil {
		o.onWarning(err)
	}
}

// DBMS returns a WriteOption that switches the column-name checks to the
// strict rule set used by database-backed archives: names of at most 16
// characters, alphanumerics and underscores only with a non-digit first
// character, no reserved axis names, and no case-insensitive duplicates.
func DBMS() WriteOption {
	return func(o *writeOptions) error {
		o.dbms = true
		return nil
	}
}

// IncludeNames returns a WriteOption that restricts output to the named
// columns. Names absent from the table are ignored.
func IncludeNames(names ...string) WriteOption {
	return func(o *writeOptions) error {
		if len(names) == 0 {
			return fmt.Errorf("ipac: IncludeNames requires at least one name")
		}
		o.includeNames = append(o.includeNames, names...)
		return nil
	}
}

// ExcludeNames returns a WriteOption that drops the named columns from
// output. Exclusion is applied after inclusion, so a name present in both
// sets is dropped. Names absent from the table are ignored.
func ExcludeNames(names ...string) WriteOption {
	return func(o *writeOptions) error {
		if len(names) == 0 {
			return fmt.Errorf("ipac: ExcludeNames requires at least one name")
		}
		o.excludeNames = append(o.excludeNames, names...)
		return nil
	}
}

// NullValue returns a WriteOption that overrides the null sentinel written
// for one column. The override replaces both the null header cell and the
// rendering of missing cells in that column.
func NullValue(column, value string) WriteOption {
	return func(o *writeOptions) error {
		if column == "" {
			return fmt.Errorf("ipac: NullValue requires a column name")
		}
		if o.nullValues == nil {
			o.nullValues = make(map[string]string)
		}
		o.nullValues[column] = value
		return nil
	}
}

// OnWarning returns a WriteOption that registers a sink for non-fatal
// warnings such as *CommentWrappedWarning. Warnings never abort a write;
// without a sink they are dropped.
func OnWarning(fn func(error)) WriteOption {
	return func(o *writeOptions) error {
		if fn == nil {
			return fmt.Errorf("ipac: OnWarning requires a non-nil function")
		}
		o.onWarning = fn
		return nil
	}
}
