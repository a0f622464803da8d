package structjson

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/structjson/packable"
	"github.com/quickwritereader/structjson/types"
)

type Player struct {
	Username  string                    `json:"username"`
	Level     int                       `json:"level"`
	Health    float64                   `json:"health"`
	Inventory []string                  `json:"inventory"`
	Guild     packable.Nullable[string] `json:"guild"`
}

const aliceJSON = `{"username":"Alice","level":42,"health":99.5,"inventory":["sword","shield"]}`

func alice() Player {
	return Player{Username: "Alice", Level: 42, Health: 99.5, Inventory: []string{"sword", "shield"}}
}

type entry struct {
	level, msg string
	f          Fields
}

type recorder struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recorder) add(level, msg string, f Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry{level, msg, f})
}

func (r *recorder) Debug(msg string, f Fields) { r.add("debug", msg, f) }
func (r *recorder) Info(msg string, f Fields)  { r.add("info", msg, f) }
func (r *recorder) Warn(msg string, f Fields)  { r.add("warn", msg, f) }
func (r *recorder) Error(msg string, f Fields) { r.add("error", msg, f) }

func TestMarshalUnmarshal(t *testing.T) {
	out, err := Marshal(alice())
	require.NoError(t, err)
	assert.Equal(t, aliceJSON, string(out))

	var p Player
	require.NoError(t, Unmarshal(out, &p))
	assert.Equal(t, alice(), p)
}

func TestMarshalWith(t *testing.T) {
	out, err := MarshalWith(alice(), Options{AbsentAsNull: true})
	require.NoError(t, err)
	assert.Equal(t, `{"username":"Alice","level":42,"health":99.5,"inventory":["sword","shield"],"guild":null}`, string(out))

	var p Player
	err = UnmarshalWith([]byte(`{"username":"x"}`), &p, Options{Strict: true})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(struct {
		A int   `json:"a"`
		B []int `json:"b"`
	}{A: 1, B: []int{2}}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}", string(out))

	_, err = MarshalIndent(math.Inf(1), "", " ")
	assert.ErrorIs(t, err, ErrNonFiniteNumber)
}

func TestCodec(t *testing.T) {
	rec := &recorder{}
	c, err := New[Player](Options{Logger: rec})
	require.NoError(t, err)

	require.NotEmpty(t, rec.entries)
	first := rec.entries[0]
	assert.Equal(t, "debug", first.level)
	assert.Equal(t, "structjson.codec_ready", first.msg)
	assert.Equal(t, "structjson.Player", first.f["type"])
	assert.Equal(t, 5, first.f["fields"])
	assert.Equal(t, "record", first.f["shape"])

	out, err := c.Encode(alice())
	require.NoError(t, err)
	assert.Equal(t, aliceJSON, string(out))

	p, err := c.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, alice(), p)

	_, err = c.Decode([]byte(`{"level":"high"}`))
	require.ErrorIs(t, err, ErrTypeMismatch)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "level", e.Path)
	assert.Equal(t, "warn", rec.entries[len(rec.entries)-1].level)

	keep := Player{Username: "keep", Level: 1}
	require.NoError(t, c.DecodeInto([]byte(`{"level":2}`), &keep))
	assert.Equal(t, Player{Username: "keep", Level: 2}, keep)
}

func TestCodec_RejectsUnsupported(t *testing.T) {
	type bad struct {
		F func() `json:"f"`
	}
	rec := &recorder{}
	_, err := New[bad](Options{Logger: rec})
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "error", rec.entries[0].level)

	assert.Panics(t, func() { Must[bad](Options{}) })
	assert.ErrorIs(t, Register[bad](), types.ErrUnsupportedType)
}

func TestRegisterAndSchema(t *testing.T) {
	require.NoError(t, Register[Player]())
	s, err := SchemaOf[Player]()
	require.NoError(t, err)
	assert.Equal(t, []string{"username", "level", "health", "inventory", "guild"}, s.Names())
	assert.Equal(t, types.ShapeRecord, ShapeOf[Player]())
	assert.Equal(t, types.ShapeOptional, ShapeOf[*Player]())
}

func TestCodec_ConcurrentUse(t *testing.T) {
	c := Must[Player](Options{})
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := alice()
			in.Level = i
			out, err := c.Encode(in)
			assert.NoError(t, err)
			back, err := c.Decode(out)
			assert.NoError(t, err)
			assert.Equal(t, in, back)
		}()
	}
	wg.Wait()
}
