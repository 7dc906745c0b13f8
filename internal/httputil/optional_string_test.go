package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Address OptionalString `json:"address"`
}

func TestOptionalString_TriState(t *testing.T) {
	var absent, cleared, set patchBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"address":null}`), &cleared))
	require.NoError(t, json.Unmarshal([]byte(`{"address":"Dock 4"}`), &set))

	assert.False(t, absent.Address.Present)
	assert.True(t, cleared.Address.Present)
	assert.Nil(t, cleared.Address.Value)
	require.NotNil(t, set.Address.Value)
	assert.Equal(t, "Dock 4", *set.Address.Value)
}

func TestOptionalString_Apply(t *testing.T) {
	stored := "Industrial District"

	OptionalString{}.Apply(&stored)
	assert.Equal(t, "Industrial District", stored)

	Set("Logistics Park").Apply(&stored)
	assert.Equal(t, "Logistics Park", stored)

	OptionalString{Present: true}.Apply(&stored)
	assert.Equal(t, "", stored)
}
