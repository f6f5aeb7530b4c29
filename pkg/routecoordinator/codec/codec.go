// Package codec converts route parameters and results between typed Go values,
// untyped string-keyed mappings, and the canonical byte form carried through
// completion callbacks.
package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two directions of the boundary.
var (
	// ErrEncoding indicates a value could not be converted to its byte form or mapping.
	ErrEncoding = errors.New("routecoordinator: encoding error")

	// ErrDecoding indicates bytes or a mapping did not match the requested type.
	ErrDecoding = errors.New("routecoordinator: decoding error")
)

// Codec defines the canonical byte form used at both hops.
type Codec interface {
	// Marshal serializes a value to bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into the value pointed to by v.
	Unmarshal(data []byte, v any) error

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// Codec names accepted by ByName.
const (
	NameJSON    = "json"
	NameMsgpack = "msgpack"
)

// ByName returns a codec by name. An empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch name {
	case NameJSON, "":
		return JSON{}, nil
	case NameMsgpack:
		return Msgpack{}, nil
	default:
		return nil, fmt.Errorf("routecoordinator: unknown codec %q", name)
	}
}

// mappingUnmarshaler is implemented by codecs whose plain Unmarshal into an
// untyped value loses precision.
type mappingUnmarshaler interface {
	unmarshalMapping(data []byte, v any) error
}

// EncodeToMapping serializes v and reads the bytes back as a string-keyed mapping.
//
// The mapping is nil whenever the conversion fails; the error says why. A value
// that serializes to null (a nil pointer, for instance) yields a nil mapping and
// no error, meaning "no parameters".
func EncodeToMapping(c Codec, v any) (map[string]any, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	unmarshal := c.Unmarshal
	if m, ok := c.(mappingUnmarshaler); ok {
		unmarshal = m.unmarshalMapping
	}

	var decoded any
	if err := unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if decoded == nil {
		return nil, nil
	}

	mapping, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not encode to a key/value mapping", ErrEncoding, v)
	}
	return mapping, nil
}

// DecodeFromMapping converts an untyped mapping into T by way of the byte form.
// A nil mapping is a decoding failure.
func DecodeFromMapping[T any](c Codec, mapping map[string]any) (T, error) {
	var zero T
	if mapping == nil {
		return zero, fmt.Errorf("%w: no mapping to decode into %T", ErrDecoding, zero)
	}

	data, err := c.Marshal(mapping)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return DecodeFromRaw[T](c, data)
}

// DecodeFromRaw deserializes raw result bytes directly into T.
func DecodeFromRaw[T any](c Codec, data []byte) (T, error) {
	var t T
	if err := c.Unmarshal(data, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return t, nil
}
