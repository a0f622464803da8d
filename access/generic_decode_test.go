package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/structjson/types"
)

func TestDecodeAny(t *testing.T) {
	v, err := Parse([]byte(`{"user":"alice","n":3,"tags":["a",true,null],"inner":{"x":1.5},"empty":[]}`))
	require.NoError(t, err)

	got, err := DecodeAny(v)
	require.NoError(t, err)
	expected := map[string]any{
		"user":  "alice",
		"n":     float64(3),
		"tags":  []any{"a", true, nil},
		"inner": map[string]any{"x": 1.5},
		"empty": []any{},
	}
	assert.Equal(t, expected, got)
}

func TestDecodeOrderedAny(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":{"y":2,"b":3}}`))
	require.NoError(t, err)

	got, err := DecodeOrderedAny(v)
	require.NoError(t, err)
	om, ok := got.(*types.OrderedMapAny)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, om.Keys())

	inner := types.GetAs[*types.OrderedMapAny](om, "a")
	require.NotNil(t, inner)
	assert.Equal(t, []string{"y", "b"}, inner.Keys())
}

func TestDecodeAny_ErrorPath(t *testing.T) {
	v := RawValue([]byte(`{"list":[1,"\ud800"]}`))
	_, err := DecodeAny(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidUnicode)
	assert.Contains(t, err.Error(), `["list"][1]`)
}
