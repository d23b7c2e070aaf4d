package feed

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The search API is loose about scalar types: ids arrive as strings or
// numbers, counts as numbers or numeric strings, and the description is
// sometimes wrapped in a one-element array. These types absorb that at the
// decoding boundary so normalization works with explicit values.

// flexString accepts a JSON string, number, or null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

// flexNumber accepts a JSON number, numeric string, or null. Valid is false
// when the value is absent or not numeric.
type flexNumber struct {
	Value float64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = flexNumber{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = flexNumber{}
		return nil
	}
	*n = flexNumber{Value: v, Valid: true}
	return nil
}

// flexText accepts a JSON string or an array of strings, keeping the first
// element.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '[' {
		var arr []flexString
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		if len(arr) > 0 {
			*t = flexText(arr[0])
		} else {
			*t = ""
		}
		return nil
	}
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = flexText(s)
	return nil
}
