package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Witness records are small structs of strings and integer slices, which
// JSON handles portably. If you need custom encoding (e.g. protobuf or
// msgpack), implement Codec and set it where snapshots accept one.
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
var Default Codec = JSON{}
