package helix

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoData is returned when a listing carries no usable data array.
// Callers treat it as "nothing found" rather than a failure.
var ErrNoData = errors.New("response has no data")

// Envelope is the common shape of every Helix listing response.
type Envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

type Pagination struct {
	Cursor json.RawMessage `json:"cursor"`
}

// Cursor returns the cursor for the next page, or "" on the last page. A
// cursor that is not a string also ends pagination.
func (e *Envelope) Cursor() string {
	if e.Pagination == nil || len(e.Pagination.Cursor) == 0 {
		return ""
	}

	var cursor string
	if err := json.Unmarshal(e.Pagination.Cursor, &cursor); err != nil {
		return ""
	}
	return cursor
}

// Records splits the data array into raw records keyed by field name.
func (e *Envelope) Records() ([]map[string]json.RawMessage, error) {
	if len(e.Data) == 0 || e.Data[0] != '[' {
		return nil, ErrNoData
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &records); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return records, nil
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Body)
}

// FieldError reports a required record field that is absent or mistyped.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("field %q: missing", e.Key)
	}
	return fmt.Sprintf("field %q: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
