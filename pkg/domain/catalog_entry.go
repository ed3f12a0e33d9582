package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CatalogEntry is a single video in the content catalog.
type CatalogEntry struct {
	ID string
}

// UnmarshalJSON accepts {"v": "abc123"} as well as numeric ids like {"v": 42}.
func (c *CatalogEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v := strings.TrimSpace(string(raw.V))
	switch {
	case v == "" || v == "null":
		c.ID = ""
	case strings.HasPrefix(v, `"`):
		if err := json.Unmarshal(raw.V, &c.ID); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw.V, &n); err != nil {
			return fmt.Errorf("decoding id %s: %w", v, err)
		}
		c.ID = n.String()
	}

	return nil
}
