package codecs

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"

	"github.com/quickwritereader/structjson"
)

// JSON uses structjson. The zero value uses default options.
type JSON[V any] struct {
	Options structjson.Options
}

var _ Codec[struct{}] = JSON[struct{}]{}

func (c JSON[V]) Encode(v V) ([]byte, error) { return structjson.MarshalWith(v, c.Options) }
func (c JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := structjson.UnmarshalWith(b, &v, c.Options)
	return v, err
}

type StdJSON[V any] struct{}

func (StdJSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (StdJSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

type GoJSON[V any] struct{}

func (GoJSON[V]) Encode(v V) ([]byte, error) { return gojson.Marshal(v) }
func (GoJSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := gojson.Unmarshal(b, &v)
	return v, err
}

var iterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONIter[V any] struct{}

func (JSONIter[V]) Encode(v V) ([]byte, error) { return iterAPI.Marshal(v) }
func (JSONIter[V]) Decode(b []byte) (V, error) {
	var v V
	err := iterAPI.Unmarshal(b, &v)
	return v, err
}

// Sonic uses the standard-compatible sonic config, so map keys are sorted
// and HTML is escaped like encoding/json.
type Sonic[V any] struct{}

func (Sonic[V]) Encode(v V) ([]byte, error) { return sonic.ConfigStd.Marshal(v) }
func (Sonic[V]) Decode(b []byte) (V, error) {
	var v V
	err := sonic.ConfigStd.Unmarshal(b, &v)
	return v, err
}
