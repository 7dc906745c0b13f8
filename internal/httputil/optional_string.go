package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for JSON PATCH semantics (RFC 7396):
//   - Present=false: field absent from JSON (keep the stored value)
//   - Present=true, Value=nil: field is JSON null (clear it)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding s
func Set(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// UnmarshalJSON is only called when the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON writes null for absent or cleared values
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Apply writes the value into dst when the field was present.
// A JSON null clears dst to the empty string.
func (o OptionalString) Apply(dst *string) {
	if !o.Present {
		return
	}
	if o.Value == nil {
		*dst = ""
		return
	}
	*dst = *o.Value
}
