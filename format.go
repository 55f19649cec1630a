package ipac

// Format reads IPAC text and writes it back in canonical form: metadata
// lines first, all four header lines, every column sized to its widest
// entry, and the null sentinels spelled out. Formatting canonical text
// returns it unchanged.
//
// Read options apply to the parse, so data written under a different
// boundary convention can be canonicalized with WithDefinition.
func Format(data []byte, opts ...ReadOption) ([]byte, error) {
	t, err := Unmarshal(data, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(t)
}
