package codec

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// JSON encodes values with encoding/json. It is the default codec.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSON) Name() string { return NameJSON }

// unmarshalMapping keeps numbers as json.Number so integers above 2^53 survive
// the untyped hop.
func (JSON) unmarshalMapping(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Field returns the value at a dot-separated path (e.g. "user.name") in JSON bytes.
// The result reports Exists() == false when the path or the document is missing.
func Field(data []byte, path string) gjson.Result {
	return gjson.GetBytes(data, path)
}
