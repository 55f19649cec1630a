package ipac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireNameError(t *testing.T, err error, kind NameErrorKind, dbms bool) *NameError {
	t.Helper()
	var nameErr *NameError
	require.ErrorAs(t, err, &nameErr)
	require.Equal(t, kind, nameErr.Kind)
	require.Equal(t, dbms, nameErr.DBMS)
	return nameErr
}

func TestCheckNames(t *testing.T) {
	t.Run("Permissive", func(t *testing.T) {
		// Anything the header can frame is fine, spaces and symbols
		// included, as long as it fits in 40 characters.
		require.NoError(t, checkNames([]string{"col 1", "e(-)", "col.1", strings.Repeat("a", 40)}, false))

		err := checkNames([]string{strings.Repeat("a", 41)}, false)
		requireNameError(t, err, NameTooLong, false)
	})

	t.Run("Framing floor", func(t *testing.T) {
		for _, name := range []string{"", "a|b", "a\nb", "a\rb", " a", "a ", "-a-"} {
			err := checkNames([]string{name}, false)
			nameErr := requireNameError(t, err, NameInvalidChars, false)
			require.Equal(t, name, nameErr.Name)
		}
		// Interior dashes survive header trimming and are allowed.
		require.NoError(t, checkNames([]string{"a-b"}, false))
	})

	t.Run("DBMS length", func(t *testing.T) {
		require.NoError(t, checkNames([]string{strings.Repeat("a", 16)}, true))

		err := checkNames([]string{strings.Repeat("a", 17)}, true)
		requireNameError(t, err, NameTooLong, true)
	})

	t.Run("DBMS charset", func(t *testing.T) {
		require.NoError(t, checkNames([]string{"Ab_1", "_lead", "a2"}, true))

		for _, name := range []string{"col 1", "col-1", "1col", "é", "a.b"} {
			err := checkNames([]string{name}, true)
			requireNameError(t, err, NameInvalidChars, true)
		}
	})

	t.Run("DBMS reserved", func(t *testing.T) {
		for _, name := range []string{"x", "Y", "z", "X"} {
			err := checkNames([]string{name}, true)
			nameErr := requireNameError(t, err, NameReserved, true)
			require.Equal(t, name, nameErr.Name)
		}
		// Only the bare axis names are reserved.
		require.NoError(t, checkNames([]string{"xx", "x2", "zy"}, true))
	})

	t.Run("DBMS duplicates", func(t *testing.T) {
		err := checkNames([]string{"RA", "ra"}, true)
		nameErr := requireNameError(t, err, NameDuplicate, true)
		require.Equal(t, "ra", nameErr.Name)

		// The comparison is strict-mode only; the table model already
		// rejects exact duplicates.
		require.NoError(t, checkNames([]string{"RA", "ra"}, false))
	})

	t.Run("Rule order", func(t *testing.T) {
		// One name can break several rules; the first rule in order
		// wins. 17 characters with a bad charset reports length, and a
		// framing violation beats everything.
		err := checkNames([]string{strings.Repeat("a", 16) + "."}, true)
		requireNameError(t, err, NameTooLong, true)

		err = checkNames([]string{strings.Repeat("a", 41) + "|"}, true)
		requireNameError(t, err, NameInvalidChars, false)
	})
}
