package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/quickwritereader/structjson"
)

type point struct {
	X int `json:"x"`
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	_, err := structjson.New[point](structjson.Options{Logger: l})
	require.NoError(t, err)

	entries := logs.FilterMessage("structjson.codec_ready").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "zap.point", ctx["type"])
	assert.Equal(t, int64(1), ctx["fields"])

	l.Warn("w", nil)
	l.Error("e", structjson.Fields{"k": "v"})
	l.Info("i", structjson.Fields{})
	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.FilterMessage("e").All()[0].Level)
}
