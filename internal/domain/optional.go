package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DisplayUnset is what the review surfaces print for a field OCR could not read.
const DisplayUnset = "No detectada"

// Sentinel strings the OCR backend emits instead of null.
var unsetSentinels = map[string]bool{
	"No detectada": true,
	"No detectado": true,
}

// Optional is a ticket-level text field that may be unset.
// Blank and sentinel values are never stored as set.
type Optional struct {
	value string
	set   bool
}

// Some returns an Optional holding s, or an unset Optional when s is blank or a sentinel.
func Some(s string) Optional {
	if unsetSentinels[s] || strings.TrimSpace(s) == "" {
		return Optional{}
	}
	return Optional{value: s, set: true}
}

// None returns an unset Optional.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is set.
func (o Optional) Get() (string, bool) {
	return o.value, o.set
}

// IsSet reports whether the field carries a usable value.
func (o Optional) IsSet() bool {
	return o.set
}

// String returns the value, or "" when unset.
func (o Optional) String() string {
	return o.value
}

// Or returns the value, or fallback when unset.
func (o Optional) Or(fallback string) string {
	if !o.set {
		return fallback
	}
	return o.value
}

// Display formats the field for a human.
func (o Optional) Display() string {
	return o.Or(DisplayUnset)
}

// MarshalJSON encodes an unset field as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON accepts strings, numbers and null. OCR occasionally returns
// reference numbers as JSON numbers.
func (o *Optional) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*o = None()
	case string:
		*o = Some(v)
	case float64:
		*o = Some(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*o = None()
	default:
		*o = Some(string(data))
	}
	return nil
}
