package ipac

import (
	"bytes"

	"github.com/KimNorgaard/go-ipac/table"
)

// Marshal returns the IPAC encoding of t.
func Marshal(t *table.Table, opts ...WriteOption) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses IPAC-encoded data and returns the decoded table.
func Unmarshal(data []byte, opts ...ReadOption) (*table.Table, error) {
	o := readOptions{}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return decode(data, &o)
}
