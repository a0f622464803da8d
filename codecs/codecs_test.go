package codecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/structjson"
)

type item struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

type order struct {
	ID     int64             `json:"id"`
	Buyer  string            `json:"buyer"`
	Items  []item            `json:"items"`
	Labels map[string]string `json:"labels"`
	Note   *string           `json:"note,omitempty"`
	Paid   bool              `json:"paid"`
}

func sample() order {
	note := "leave at door"
	return order{
		ID:     9001,
		Buyer:  "Alice",
		Items:  []item{{"sword", 1, 12.5}, {"potion", 3, 0.75}},
		Labels: map[string]string{"gift": "yes", "prio": "high"},
		Note:   &note,
		Paid:   true,
	}
}

func TestByName_RoundTrip(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := ByName[order](name)
			require.NoError(t, err)
			b, err := c.Encode(sample())
			require.NoError(t, err)
			back, err := c.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, sample(), back)
			assert.NotEmpty(t, Describe(name))
		})
	}
}

func TestJSONCodecsAgree(t *testing.T) {
	ours, err := JSON[order]{}.Encode(sample())
	require.NoError(t, err)
	for _, name := range Names() {
		if !IsJSON(name) {
			continue
		}
		c, err := ByName[order](name)
		require.NoError(t, err)
		b, err := c.Encode(sample())
		require.NoError(t, err)
		assert.JSONEq(t, string(ours), string(b), name)

		back, err := JSON[order]{}.Decode(b)
		require.NoError(t, err, name)
		assert.Equal(t, sample(), back, name)
	}
	assert.False(t, IsJSON("cbor"))
	assert.False(t, IsJSON("nope"))
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName[order]("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestJSON_Options(t *testing.T) {
	c := JSON[order]{Options: structjson.Options{AbsentAsNull: true}}
	b, err := c.Encode(order{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"buyer":"","items":null,"labels":null,"paid":false}`, string(b))

	strict := JSON[order]{Options: structjson.Options{Strict: true}}
	_, err = strict.Decode([]byte(`{"id":1}`))
	assert.ErrorIs(t, err, structjson.ErrMissingField)
}

func TestLimit(t *testing.T) {
	c := Limit[order]{Inner: JSON[order]{}, MaxDecode: 16}
	b, err := c.Encode(sample())
	require.NoError(t, err)
	_, err = c.Decode(b)
	assert.ErrorIs(t, err, ErrTooLarge)

	v, err := c.Decode([]byte(`{"id":5}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.ID)

	off := Limit[order]{Inner: JSON[order]{}}
	_, err = off.Decode(b)
	assert.NoError(t, err)
}

func TestCBOR_Deterministic(t *testing.T) {
	c := MustCBOR[map[string]int](true)
	a, err := c.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)
	b, err := c.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	loose, err := NewCBOR[map[string]int](false)
	require.NoError(t, err)
	back, err := loose.Decode(a)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, back)
}

func TestCodecInterface(t *testing.T) {
	var _ Codec[order] = structjson.Must[order](structjson.Options{})
	var _ Codec[order] = Limit[order]{}
	var _ Codec[order] = Msgpack[order]{}
}
