// Package ident holds the identifier type shared by API records.
package ident

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is an opaque record identifier. The API may encode it as a JSON number or string.
type ID string

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// Padded renders numeric identifiers zero-padded to five digits ("#00042" style).
func (id ID) Padded() string {
	s := string(id)
	if _, err := strconv.ParseUint(s, 10, 64); err != nil || len(s) >= 5 {
		return s
	}
	return "00000"[len(s):] + s
}

// UnmarshalJSON accepts numbers, strings, and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric identifiers as numbers so the API sees its native type.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Unmarshal decodes b into v and fills *dst from "_id" when "id" was absent.
// v is usually an alias of the enclosing type to avoid recursion.
func Unmarshal(b []byte, v any, dst *ID) error {
	if err := json.Unmarshal(b, v); err != nil {
		return err
	}
	if !dst.IsZero() {
		return nil
	}
	var alt struct {
		ID ID `json:"_id"`
	}
	if err := json.Unmarshal(b, &alt); err != nil {
		return err
	}
	*dst = alt.ID
	return nil
}
