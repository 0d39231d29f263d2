package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// ID identifies links, comments and lists. New IDs are UUIDs; older backups
// used millisecond timestamps written as JSON numbers, which are accepted
// and kept in their decimal form.
type ID string

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*id = ID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string {
	return string(id)
}
