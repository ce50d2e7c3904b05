package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It handles typical structs/maps/slices; funcs, channels and complex
// numbers are not supported. For custom encoding (protobuf/msgpack),
// implement Codec and pass it where a codec is accepted.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is specified.
//
// Persisted files are self-describing (they store the codec name in their
// header) and are opened by selecting the codec by name.
var Default Codec = JSON{}
