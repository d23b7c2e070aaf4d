package feed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var doc struct {
		V flexString `json:"v"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"v":"12345"}`), &doc))
	assert.Equal(t, flexString("12345"), doc.V)

	require.NoError(t, json.Unmarshal([]byte(`{"v":12345}`), &doc))
	assert.Equal(t, flexString("12345"), doc.V)

	require.NoError(t, json.Unmarshal([]byte(`{"v":null}`), &doc))
	assert.Equal(t, flexString(""), doc.V)
}

func TestFlexNumber(t *testing.T) {
	var doc struct {
		V flexNumber `json:"v"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"v":3.5}`), &doc))
	assert.True(t, doc.V.Valid)
	assert.Equal(t, 3.5, doc.V.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"v":"12"}`), &doc))
	assert.True(t, doc.V.Valid)
	assert.Equal(t, float64(12), doc.V.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"v":null}`), &doc))
	assert.False(t, doc.V.Valid)

	// Non-numeric strings invalidate the value rather than failing the
	// whole document.
	require.NoError(t, json.Unmarshal([]byte(`{"v":"n/a"}`), &doc))
	assert.False(t, doc.V.Valid)
}

func TestFlexText(t *testing.T) {
	var doc struct {
		V flexText `json:"v"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"v":"a fine vessel"}`), &doc))
	assert.Equal(t, flexText("a fine vessel"), doc.V)

	require.NoError(t, json.Unmarshal([]byte(`{"v":["first","second"]}`), &doc))
	assert.Equal(t, flexText("first"), doc.V)

	require.NoError(t, json.Unmarshal([]byte(`{"v":[]}`), &doc))
	assert.Equal(t, flexText(""), doc.V)

	require.NoError(t, json.Unmarshal([]byte(`{"v":null}`), &doc))
	assert.Equal(t, flexText(""), doc.V)
}
