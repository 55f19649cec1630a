package ipac

import (
	"strings"
	"unicode/utf8"
)

const (
	// maxNameLen is the column-name length limit in the default mode.
	maxNameLen = 40
	// maxNameLenDBMS is the limit when writing for database-backed archives.
	maxNameLenDBMS = 16
)

// reservedNames are axis names database-backed archives claim for
// themselves. Checked case-insensitively, and only under DBMS.
var reservedNames = map[string]struct{}{
	"x": {},
	"y": {},
	"z": {},
}

// checkNames validates the column names that survived filtering, in table
// order, before any output is rendered. The first violation aborts the
// write. The case-folded seen set used for duplicate detection lives for a
// single write call.
func checkNames(names []string, dbms bool) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if err := checkName(name, dbms, seen); err != nil {
			return err
		}
	}
	return nil
}

// checkName applies the rules in a fixed order per name: framing, length,
// charset, reserved, duplicate. Only the length rule applies outside DBMS.
func checkName(name string, dbms bool, seen map[string]struct{}) error {
	// A name the header cannot frame, or that header trimming would
	// alter, is invalid in every mode.
	if name == "" || strings.ContainsAny(name, "|\r\n") || strings.Trim(name, " \t-") != name {
		return &NameError{Name: name, Kind: NameInvalidChars}
	}
	limit := maxNameLen
	if dbms {
		limit = maxNameLenDBMS
	}
	if utf8.RuneCountInString(name) > limit {
		return &NameError{Name: name, Kind: NameTooLong, DBMS: dbms}
	}
	if !dbms {
		return nil
	}
	if !validDBMSName(name) {
		return &NameError{Name: name, Kind: NameInvalidChars, DBMS: true}
	}
	folded := strings.ToLower(name)
	if _, ok := reservedNames[folded]; ok {
		return &NameError{Name: name, Kind: NameReserved, DBMS: true}
	}
	if _, ok := seen[folded]; ok {
		return &NameError{Name: name, Kind: NameDuplicate, DBMS: true}
	}
	seen[folded] = struct{}{}
	return nil
}

func validDBMSName(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
