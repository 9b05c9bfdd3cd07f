package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a backend record identifier. The REST backends this client targets
// disagree on id shape: crudcrud-style backends use string ids, json-server
// style backends use numeric ids. ID accepts both and re-marshals in the
// shape it was read in.
type ID struct {
	value   string
	numeric bool
}

// StringID builds an ID from a string identifier.
func StringID(s string) ID {
	return ID{value: s}
}

// NumericID builds an ID from a numeric identifier.
func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

// String returns the identifier as it appears in request paths.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON writes the identifier back in its original shape.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}
