/*
Package ipac reads and writes the IPAC fixed-width table format, the
self-describing text layout used to exchange astronomical catalogs. The API
mirrors the standard encoding packages: Marshal and Unmarshal for byte
slices, Encoder and Decoder for streams.

A table carries its own schema. Up to four header lines framed by vertical
bars declare the column names, types, units and null sentinels, preceded by
optional backslash metadata lines and followed by one space-aligned line per
row:

	\ A short comment about the catalog.
	\origin=survey pipeline
	|name|  ra| dec|
	|char| int| int|
	|    | deg| deg|
	|    |null|null|
	 m31    10   41
	 m51   202 null

Reading:

	t, err := ipac.Unmarshal(data)
	if err != nil {
		// handle error
	}
	ra := t.Column("ra")
	for i := 0; i < ra.Len(); i++ {
		if ra.Missing(i) {
			continue
		}
		_ = ra.Value(i).(int64)
	}

Column boundaries in data lines are taken from the positions of the vertical
bars in the header. A character sitting exactly under a bar is ambiguous, and
the WithDefinition option decides who owns it: Ignore (the default) drops it,
Left and Right give it to the neighboring column.

Writing renders a table built with the table package back to text. Column
widths are computed from the content, data cells line up under the header,
and the output of a write can always be read back to an equal table:

	out, err := ipac.Marshal(t, ipac.DBMS(), ipac.OnWarning(func(err error) {
		log.Println(err)
	}))

Write behavior is customized with functional options: DBMS switches to the
strict archive rules for column names, IncludeNames and ExcludeNames select
columns, NullValue overrides a column's null sentinel, and OnWarning
receives non-fatal warnings such as wrapped comments.
*/
package ipac
