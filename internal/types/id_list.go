// id_list.go
//
// Hierarchical asset aggregation and chart data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fleetboard.
// fleetboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fleetboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fleetboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"encoding/json"
	"strings"
)

// IDList is a list of entity ids that can be unmarshaled from a JSON array,
// a single string, or a comma separated string. Blank ids are dropped and
// order is kept.
type IDList []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (l *IDList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}

	var raw []string
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		raw = strings.Split(one, ",")
	}

	*l = nil
	l.Add(raw...)
	return nil
}

// Add appends trimmed, non-blank ids
func (l *IDList) Add(ids ...string) {
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			*l = append(*l, id)
		}
	}
}

// Slice converts IDList back to []string.
func (l IDList) Slice() []string {
	return []string(l)
}
