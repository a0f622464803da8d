package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/structjson/scalar"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestPlayerCmd(t *testing.T) {
	out, _, err := run(t, "player")
	require.NoError(t, err)
	assert.Equal(t, `{"username":"Alice","level":42,"health":99.5,"inventory":["sword","shield"]}`+"\n"+
		"round trip equal: true\n", out)

	out, _, err = run(t, "player", "--indent")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"username\": \"Alice\",\n")

	out, _, err = run(t, "player", "--indent", "--absent-as-null")
	require.NoError(t, err)
	shown, _, ok := strings.Cut(out, "round trip equal")
	require.True(t, ok)
	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, []byte(shown)))
	assert.Equal(t, `{"username":"Alice","level":42,"health":99.5,"inventory":["sword","shield"]}`, compact.String())
}

func TestPlayerCmd_DebugLogging(t *testing.T) {
	_, logs, err := run(t, "player", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "structjson.codec_ready")

	_, _, err = run(t, "player", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestBenchCmd(t *testing.T) {
	out, _, err := run(t, "bench", "--iterations", "3", "--statuses", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "structjson: parsed")
	assert.Contains(t, out, "MB/s")

	out, _, err = run(t, "bench", "--iterations", "2", "--statuses", "5", "--codec", "goccy")
	require.NoError(t, err)
	assert.Contains(t, out, "goccy: parsed")

	_, _, err = run(t, "bench", "--iterations", "1", "--codec", "cbor")
	assert.ErrorContains(t, err, "does not read JSON")

	_, _, err = run(t, "bench", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestBenchCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twitter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"statuses":[{"user":{"id":1,"name":"a"}}]}`), 0600))
	out, _, err := run(t, "bench", "--file", path, "--iterations", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "structjson: parsed")

	require.NoError(t, os.WriteFile(path, []byte(`{"statuses":{}}`), 0600))
	_, _, err = run(t, "bench", "--file", path, "--iterations", "5")
	assert.ErrorContains(t, err, "warmup parse")
}

func TestWeatherCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hourly":{"time":["t0","t1","t2"],"temperature_2m":[1,2,3],` +
			`"relative_humidity_2m":[50,51,52],"winddirection_10m":[0,90,180],` +
			`"precipitation":[0,0,1.5],"windspeed_10m":[5,6,7]}}`))
	}))
	defer srv.Close()

	out, _, err := run(t, "weather", "--base-url", srv.URL, "--hours", "2")
	require.NoError(t, err)
	assert.Equal(t,
		"Time: t0, Temperature: 1.0°C, Humidity: 50.0%, Wind Direction: 0.0°, Precipitation: 0.0mm, Wind Speed: 5.0km/h\n"+
			"Time: t1, Temperature: 2.0°C, Humidity: 51.0%, Wind Direction: 90.0°, Precipitation: 0.0mm, Wind Speed: 6.0km/h\n",
		out)
}

func TestWeatherCmd_DecodeFailureIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hourly":{"time":[1]}}`))
	}))
	defer srv.Close()

	_, logs, err := run(t, "weather", "--base-url", srv.URL, "--log-level", "warn", "--strict")
	require.Error(t, err)
	assert.Contains(t, logs, "structjson.decode_failed")
}

func TestEscapeScannerCmd(t *testing.T) {
	out, _, err := run(t, "escape-scanner")
	require.NoError(t, err)
	assert.Contains(t, out, "scanner: "+scalar.Scanner().Name+"\n")
	assert.Contains(t, out, "cpu: ")
}

func TestSchemaCmd(t *testing.T) {
	out, _, err := run(t, "schema", "character")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "usage.Character"`)
	assert.Contains(t, out, `"name": "username"`)
	assert.Contains(t, out, `"type": "usage.Stats"`)

	_, _, err = run(t, "schema", "dragon")
	assert.ErrorContains(t, err, "unknown type")
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "structjson.yaml")
	out, _, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)

	require.NoError(t, os.WriteFile(path, []byte("iterations: 7\ncodec: sonic\nstrict: true\n"), 0600))
	out, _, err = run(t, "config", "--config", path, "--absent-as-null")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations: 7\n")
	assert.Contains(t, out, "codec: sonic\n")
	assert.Contains(t, out, "strict: true\n")
	assert.Contains(t, out, "absent_as_null: true\n")
	assert.Contains(t, out, "log_level: info\n")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "config file does not exist")

	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0600))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")

	require.NoError(t, os.WriteFile(path, []byte("iterations: 0\n"), 0600))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "iterations must be positive")
}
