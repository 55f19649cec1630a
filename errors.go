package ipac

import (
	"fmt"

	"github.com/KimNorgaard/go-ipac/table"
)

// A HeaderError reports a malformed header block: no header lines, more than
// four, mismatched cell counts, empty or duplicate column names, or an
// unknown type keyword. Line is the 1-based physical line number, or 0 when
// no single line is at fault.
type HeaderError struct {
	Line    int
	Message string
}

func (e *HeaderError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("ipac: line %d: %s", e.Line, e.Message)
	}
	return "ipac: " + e.Message
}

// A TruncatedLineError reports a data line too short for the resolved column
// layout. Need is the rune length the layout requires to slice Column; Have
// is the rune length of the line. The read aborts and no table is returned.
type TruncatedLineError struct {
	Line   int
	Column string
	Need   int
	Have   int
}

func (e *TruncatedLineError) Error() string {
	return fmt.Sprintf("ipac: line %d: truncated line: column %q needs %d characters, line has %d",
		e.Line, e.Column, e.Need, e.Have)
}

// A CellTypeError reports a cell whose text matches neither the column's
// null sentinel nor its declared type. The read aborts and no table is
// returned.
type CellTypeError struct {
	Line   int
	Column string
	Type   table.Type
	Value  string
}

func (e *CellTypeError) Error() string {
	return fmt.Sprintf("ipac: line %d: column %q: cannot parse %q as %s",
		e.Line, e.Column, e.Value, e.Type)
}

// NameErrorKind identifies which column-name rule a NameError reports.
type NameErrorKind int

const (
	// NameTooLong means the name exceeds 40 characters, or 16 under DBMS.
	NameTooLong NameErrorKind = iota
	// NameInvalidChars means the name contains characters the format (or,
	// under DBMS, the archive charset) cannot represent.
	NameInvalidChars
	// NameReserved means the name collides with a reserved axis name.
	NameReserved
	// NameDuplicate means the name repeats an earlier one under the
	// case-insensitive DBMS comparison.
	NameDuplicate
)

func (k NameErrorKind) String() string {
	switch k {
	case NameTooLong:
		return "too long"
	case NameInvalidChars:
		return "invalid characters"
	case NameReserved:
		return "reserved"
	case NameDuplicate:
		return "duplicate"
	}
	return fmt.Sprintf("name error(%d)", int(k))
}

// A NameError reports a column name the writer refuses to emit. DBMS is true
// when the name broke a strict-mode rule, so callers can tell hard format
// violations from archive-compatibility ones.
type NameError struct {
	Name string
	Kind NameErrorKind
	DBMS bool
}

func (e *NameError) Error() string {
	var why string
	switch e.Kind {
	case NameTooLong:
		limit := maxNameLen
		if e.DBMS {
			limit = maxNameLenDBMS
		}
		why = fmt.Sprintf("maximum length for a column name is %d characters", limit)
	case NameInvalidChars:
		if e.DBMS {
			why = "only alphanumeric characters and _ are allowed, and the first character cannot be a digit"
		} else {
			why = "names cannot be empty or contain the column separator or line breaks"
		}
	case NameReserved:
		why = "x, y and z are reserved"
	case NameDuplicate:
		why = "names are compared case-insensitively and this one is already taken"
	default:
		why = e.Kind.String()
	}
	return fmt.Sprintf("ipac: column name %q: %s", e.Name, why)
}

// A CommentWrappedWarning reports that a comment longer than one output line
// allows was wrapped across several. It is delivered through the OnWarning
// sink and never aborts a write.
type CommentWrappedWarning struct {
	Comment string // the original, unwrapped comment
}

func (w *CommentWrappedWarning) Error() string {
	return fmt.Sprintf("ipac: comment longer than %d characters was automatically wrapped", commentWidth)
}
