package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON decodes nested string collections (record tags, collaborator lists)
// natively, so no second parsing pass is ever needed for them.
//
// If you need custom encoding (e.g. protobuf/msgpack), implement Codec and
// pass it to the store via its codec option.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-created snapshots. Existing persisted files are
// self-describing (they store the codec name in their header) and are opened
// by selecting the appropriate codec by name.
var Default Codec = GoJSON{}
