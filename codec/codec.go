// Package codec centralizes component payload encoding for snapshots.
//
// Codec selection is a compatibility boundary: snapshots record the codec
// name in their header, and a snapshot written with one codec can only be
// decoded by a codec with the same name.
package codec

import "fmt"

// Codec encodes and decodes component values and snapshot documents.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Snapshot headers store the codec name so files are self-describing;
// this is how the right codec is selected on load.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
