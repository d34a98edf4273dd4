package entity

import "strings"

// Tag is a label. Assets refer to tags by name, not by ID.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SameName compares tag names case-insensitively.
func (t Tag) SameName(name string) bool {
	return strings.EqualFold(t.Name, name)
}
