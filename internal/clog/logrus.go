package clog

import "github.com/sirupsen/logrus"

// logrusLogger is the default clog.Logger backend, structured logging
// via logrus behind the backend-agnostic clog interface.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrus builds the default clog backend around a dedicated logrus
// logger instance scoped to the "reasoner" component.
func NewLogrus() Logger {
	l := logrus.New()
	return &logrusLogger{entry: l.WithField("component", "reasoner")}
}

func (l *logrusLogger) Infof(format string, args ...interface{})    { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warningf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{})   { l.entry.Errorf(format, args...) }
func (l *logrusLogger) Fatalf(format string, args ...interface{})   { l.entry.Fatalf(format, args...) }
