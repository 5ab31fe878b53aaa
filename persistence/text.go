package persistence

import (
	"fmt"

	"github.com/picobrowse/markvault/codec"
	"github.com/picobrowse/markvault/record"
)

// EncodeText serializes lib to the structured text representation: a single
// object with one named array-of-records field. Nested string collections
// (tags, collaborators) are encoded in place, so decoding is a single pass.
func EncodeText(lib *record.Library, c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(Envelope{Records: lib.Records()})
}

// DecodeText reconstructs a Library from the text representation produced by
// EncodeText. Every field round-trips exactly, including empty collections.
func DecodeText(data []byte, c codec.Codec) (*record.Library, error) {
	if c == nil {
		c = codec.Default
	}
	var env Envelope
	if err := c.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode text snapshot: %w", err)
	}
	return record.FromRecords(env.Records), nil
}
