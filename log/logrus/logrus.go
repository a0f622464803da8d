// Package logrus adapts a *logrus.Entry to structjson.Logger.
package logrus

import (
	"github.com/quickwritereader/structjson"
	"github.com/sirupsen/logrus"
)

var _ structjson.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f structjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f structjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f structjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f structjson.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
