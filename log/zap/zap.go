// Package zap adapts a *zap.Logger to structjson.Logger.
package zap

import (
	"github.com/quickwritereader/structjson"
	"go.uber.org/zap"
)

var _ structjson.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f structjson.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f structjson.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f structjson.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f structjson.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f structjson.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
