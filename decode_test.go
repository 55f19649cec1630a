package ipac_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/KimNorgaard/go-ipac"
	"github.com/KimNorgaard/go-ipac/table"
	"github.com/stretchr/testify/require"
)

// src joins physical lines into input text. Data lines are space-sensitive,
// so tests spell them out one string per line.
func src(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestUnmarshal(t *testing.T) {
	t.Run("Full header", func(t *testing.T) {
		in := src(
			`\ Catalog of nearby galaxies.`,
			`\origin = "IPAC survey"`,
			"|name |ra  |flux |note|",
			"|char |i   |doub |date|",
			"|     |deg |     |    |",
			"|     |-9  |     |    |",
			" m31     10  1.5  2005",
			" m51     -9  null 2006",
		)

		tbl, err := ipac.Unmarshal(in)
		require.NoError(t, err)

		require.Equal(t, []string{"Catalog of nearby galaxies."}, tbl.Comments)
		require.Equal(t, []table.Keyword{{Name: "origin", Value: "IPAC survey"}}, tbl.Keywords)
		require.Equal(t, 2, tbl.Len())
		require.Len(t, tbl.Columns(), 4)

		name := tbl.Column("name")
		require.Equal(t, table.Char, name.Type)
		require.Equal(t, "", name.Unit)
		require.Equal(t, "m31", name.Value(0))
		require.Equal(t, "m51", name.Value(1))

		ra := tbl.Column("ra")
		require.Equal(t, table.Int, ra.Type)
		require.Equal(t, "deg", ra.Unit)
		require.Equal(t, "-9", ra.Null)
		require.Equal(t, int64(10), ra.Value(0))
		require.True(t, ra.Missing(1))
		require.Nil(t, ra.Value(1))

		flux := tbl.Column("flux")
		require.Equal(t, table.Double, flux.Type)
		require.Equal(t, "null", flux.Null)
		require.Equal(t, 1.5, flux.Value(0))
		require.True(t, flux.Missing(1))

		note := tbl.Column("note")
		require.Equal(t, table.Date, note.Type)
		require.Equal(t, "2005", note.Value(0))
		require.Equal(t, "2006", note.Value(1))
	})

	t.Run("Names only", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src(
			"|a |b |",
			" x  y ",
			" z    ",
		))
		require.NoError(t, err)

		// Without a type line every column is char.
		require.Equal(t, table.Char, tbl.Column("a").Type)
		require.Equal(t, table.Char, tbl.Column("b").Type)
		require.Equal(t, "x", tbl.Column("a").Value(0))
		require.Equal(t, "y", tbl.Column("b").Value(0))

		// The char sentinel defaults to the empty string, so an all-blank
		// char cell is a missing cell.
		require.Equal(t, "z", tbl.Column("a").Value(1))
		require.True(t, tbl.Column("b").Missing(1))
	})

	t.Run("Dashed header", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src(
			"|--ra--|--dec--|",
			"|--int-|--int--|",
			"      1       2",
		))
		require.NoError(t, err)
		require.Equal(t, int64(1), tbl.Column("ra").Value(0))
		require.Equal(t, int64(2), tbl.Column("dec").Value(0))
	})

	t.Run("Boundary definitions", func(t *testing.T) {
		// Every B belongs to a column; every A sits under a marker.
		in := src(
			"|   a  |   b   |",
			"| char | char  |",
			"ABBBBBBABBBBBBBA",
		)

		for _, tc := range []struct {
			def  ipac.Definition
			a, b string
		}{
			{ipac.Ignore, "BBBBBB", "BBBBBBB"},
			{ipac.Left, "BBBBBBA", "BBBBBBBA"},
			{ipac.Right, "ABBBBBB", "ABBBBBBB"},
		} {
			t.Run(tc.def.String(), func(t *testing.T) {
				tbl, err := ipac.Unmarshal(in, ipac.WithDefinition(tc.def))
				require.NoError(t, err)
				require.Equal(t, tc.a, tbl.Column("a").Value(0))
				require.Equal(t, tc.b, tbl.Column("b").Value(0))
			})
		}

		// The default policy is Ignore.
		tbl, err := ipac.Unmarshal(in)
		require.NoError(t, err)
		require.Equal(t, "BBBBBB", tbl.Column("a").Value(0))
	})

	t.Run("Type keywords", func(t *testing.T) {
		for keyword, want := range map[string]table.Type{
			"i":       table.Int,
			"int":     table.Int,
			"integer": table.Int,
			"l":       table.Long,
			"long":    table.Long,
			"d":       table.Double,
			"double":  table.Double,
			"r":       table.Double,
			"real":    table.Double,
			"f":       table.Float,
			"float":   table.Float,
			"c":       table.Char,
			"char":    table.Char,
			"da":      table.Date,
			"date":    table.Date,
			"DOUBLE":  table.Double,
		} {
			tbl, err := ipac.Unmarshal(src("|a|", "|"+keyword+"|"))
			require.NoError(t, err, keyword)
			require.Equal(t, want, tbl.Column("a").Type, keyword)
			require.Equal(t, 0, tbl.Len())
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src(
			`\k = 1`,
			`\ k = 2`,
			`\j="  spaced  "`,
			`\k=3`,
			"|a|",
			" 1 ",
			`\ metadata after the header is passed over`,
		))
		require.NoError(t, err)

		// A blank after the backslash means comment, even with an
		// equals sign further along. Repeated keywords keep their
		// first position and last value.
		require.Equal(t, []string{"k = 2"}, tbl.Comments)
		require.Equal(t, []table.Keyword{
			{Name: "k", Value: "3"},
			{Name: "j", Value: "  spaced  "},
		}, tbl.Keywords)
		require.Equal(t, 1, tbl.Len())
	})

	t.Run("Data section noise", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src(
			"|a  |",
			"|int|",
			" 1  ",
			"",
			"|---|",
			`\ interleaved`,
			" 2  ",
		))
		require.NoError(t, err)

		// Blank lines, marker-framed separators and backslash lines
		// between rows are all skipped.
		require.Equal(t, 2, tbl.Len())
		require.Equal(t, int64(1), tbl.Column("a").Value(0))
		require.Equal(t, int64(2), tbl.Column("a").Value(1))
		require.Empty(t, tbl.Comments)
	})

	t.Run("CRLF", func(t *testing.T) {
		tbl, err := ipac.Unmarshal([]byte("|a |b |\r\n|int|int|\r\n 1   2 \r\n"))
		require.NoError(t, err)
		require.Equal(t, int64(1), tbl.Column("a").Value(0))
		require.Equal(t, int64(2), tbl.Column("b").Value(0))
	})

	t.Run("Truncated line", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src("|aa |bb |", " 1 2"))
		require.Nil(t, tbl)

		var trunc *ipac.TruncatedLineError
		require.ErrorAs(t, err, &trunc)
		require.Equal(t, 2, trunc.Line)
		require.Equal(t, "bb", trunc.Column)
		require.Equal(t, 8, trunc.Need)
		require.Equal(t, 4, trunc.Have)
		require.Contains(t, err.Error(), "truncated line")
	})

	t.Run("Bad cell", func(t *testing.T) {
		tbl, err := ipac.Unmarshal(src("|a  |", "|int|", " x  "))
		require.Nil(t, tbl)

		var cellErr *ipac.CellTypeError
		require.ErrorAs(t, err, &cellErr)
		require.Equal(t, 3, cellErr.Line)
		require.Equal(t, "a", cellErr.Column)
		require.Equal(t, table.Int, cellErr.Type)
		require.Equal(t, "x", cellErr.Value)
	})

	t.Run("Header problems", func(t *testing.T) {
		cases := []struct {
			want  string
			lines []string
		}{
			{"at least one header line", []string{`\ only a comment`}},
			{"data line before any header", []string{" 1 2 "}},
			{"expected at most 4", []string{"|a|", "|c|", "| |", "| |", "|x|"}},
			{"empty name", []string{"|a ||"}},
			{"duplicate column name", []string{"|a |a |"}},
			{"want 2", []string{"|a |b |", "|int|"}},
			{"unknown type", []string{"|a |", "|wat|"}},
		}
		for _, tc := range cases {
			t.Run(tc.want, func(t *testing.T) {
				_, err := ipac.Unmarshal(src(tc.lines...))

				var headerErr *ipac.HeaderError
				require.ErrorAs(t, err, &headerErr)
				require.Contains(t, err.Error(), tc.want)
			})
		}

		_, err := ipac.Unmarshal(nil)
		require.ErrorContains(t, err, "at least one header line")
	})
}

func TestDecoder(t *testing.T) {
	tbl, err := ipac.NewDecoder(strings.NewReader("|a|\n 1 \n")).Decode()
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())

	_, err = ipac.NewDecoder(nil).Decode()
	require.ErrorContains(t, err, "nil reader")

	_, err = ipac.NewDecoder(iotest.ErrReader(errors.New("broken pipe"))).Decode()
	require.ErrorContains(t, err, "broken pipe")

	_, err = ipac.NewDecoder(strings.NewReader("|a|"), ipac.WithDefinition(ipac.Definition(42))).Decode()
	require.ErrorContains(t, err, "definition must be")
}
