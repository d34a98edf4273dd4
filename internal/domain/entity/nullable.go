package entity

import (
	"bytes"
	"encoding/json"
)

// NullableString distinguishes an absent JSON field (Set=false) from an explicit
// null (Set=true, Value=nil) and from a value.
type NullableString struct {
	Set   bool
	Value *string
}

func Null() NullableString {
	return NullableString{Set: true}
}

func StringValue(v string) NullableString {
	return NullableString{Set: true, Value: &v}
}

// Ptr returns a fresh copy of the value, or nil.
func (n NullableString) Ptr() *string {
	if n.Value == nil {
		return nil
	}
	v := *n.Value
	return &v
}

func (n NullableString) IsZero() bool {
	return !n.Set
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
