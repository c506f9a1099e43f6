// Package canonical produces compact JSON with object keys sorted at every
// depth, so that semantically equal values always serialize identically.
package canonical

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Marshal encodes v as compact JSON with recursively sorted keys. Struct
// field order is discarded; numbers keep their original textual form.
func Marshal(v any) ([]byte, error) {
	generic, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("encode canonical json: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalString is Marshal returning a string.
func MarshalString(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// normalize round-trips v through JSON into maps, slices and json.Number so
// the encoder sorts every object's keys.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}
