// Package domain defines the typed payloads exchanged with the journeys API
// and the strict JSON decoding they share. Decoding either yields a fully
// populated record or fails with a DecodeError; partially filled records are
// never returned to callers.
package domain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeError reports a document that does not satisfy an endpoint contract:
// a required field is absent, a value has the wrong type, or the bytes are
// not valid JSON at all.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("decode field %q: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("missing required field %q", e.Field)
	default:
		return fmt.Sprintf("decode payload: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode marshals a payload record to its JSON document.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// objectFields parses data as a JSON object and returns its top-level fields.
func objectFields(data []byte) (map[string]jsoniter.RawMessage, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return fields, nil
}

// requireFields verifies that every named top-level field is present in the
// JSON object held by data.
func requireFields(data []byte, names ...string) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return &DecodeError{Field: name}
		}
	}
	return nil
}

// decodeObject unmarshals a JSON object into dst after checking that every
// required top-level field is present.
func decodeObject(data []byte, dst any, required ...string) error {
	if err := requireFields(data, required...); err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
