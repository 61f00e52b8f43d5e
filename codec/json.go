package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable, lowest-dependency option. Components that
// round-trip through encoding/json (typical structs, maps, slices) work
// unchanged; funcs, channels and complex numbers do not.
//
// For custom encoding (e.g. protobuf/msgpack), implement Codec and pass it
// via WithCodec when assembling the pool.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// Snapshots are self-describing (they store the codec name in their header),
// so changing the default never breaks existing files.
var Default Codec = GoJSON{}
