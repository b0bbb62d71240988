package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDList_Unmarshal(t *testing.T) {
	cases := map[string][]string{
		`["sys001", " sys002 ", ""]`: {"sys001", "sys002"},
		`"sys001"`:                   {"sys001"},
		`"sys001,sys003"`:            {"sys001", "sys003"},
		`null`:                       nil,
	}
	for in, want := range cases {
		var body struct {
			IDs IDList `json:"ids"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"ids":`+in+`}`), &body), in)
		assert.Equal(t, want, body.IDs.Slice(), in)
	}

	var l IDList
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestGeneration_Unmarshal(t *testing.T) {
	var body struct {
		Generation Generation `json:"generation"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"generation": 3}`), &body))
	assert.Equal(t, Generation{Value: 3, Set: true}, body.Generation)

	require.NoError(t, json.Unmarshal([]byte(`{"generation": "12"}`), &body))
	assert.Equal(t, uint64(12), body.Generation.Value)

	body.Generation = Generation{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.False(t, body.Generation.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"generation": "x"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"generation": true}`), &body))

	out, err := json.Marshal(Generation{Value: 5, Set: true})
	require.NoError(t, err)
	assert.Equal(t, "5", string(out))
}

func TestCustomError(t *testing.T) {
	err := NewCustomError(403, "admin", "token %s", "missing")
	assert.Equal(t, "403: token missing [type: admin]", err.Error())
}
