package helix

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNull = errors.New("null value")

// field decodes the required key of rec into T. A missing key, a null value or
// a value of the wrong JSON type is a *FieldError.
func field[T any](rec map[string]json.RawMessage, key string) (T, error) {
	var v T

	raw, ok := rec[key]
	if !ok {
		return v, &FieldError{Key: key}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, &FieldError{Key: key, Err: errNull}
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &FieldError{Key: key, Err: err}
	}
	return v, nil
}

// rawText returns the compact JSON text under key, or "" when the key is
// absent. A null value is kept as the text "null".
func rawText(rec map[string]json.RawMessage, key string) string {
	raw, ok := rec[key]
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
