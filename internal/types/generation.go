package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Generation is an optional snapshot generation that can be unmarshaled
// from either a JSON number or a JSON string. Set is false when absent.
type Generation struct {
	Value uint64
	Set   bool
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (g *Generation) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*g = Generation{}
		return nil
	}

	// Try unmarshaling as a number first
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*g = Generation{Value: n, Set: true}
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("generation: invalid uint64 string %q: %w", s, err)
		}
		*g = Generation{Value: val, Set: true}
		return nil
	}

	return fmt.Errorf("generation: unexpected type, expected number or string")
}

// MarshalJSON renders the value, or null when unset.
func (g Generation) MarshalJSON() ([]byte, error) {
	if !g.Set {
		return []byte("null"), nil
	}
	return json.Marshal(g.Value)
}
