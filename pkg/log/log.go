// Package log provides the logging facade used throughout the emulator
// core. It wraps logrus so that the bus, CPU and run loop can log
// structured diagnostics without each package configuring its own
// formatter.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal logging contract the core depends on.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logrusLogger struct {
	l *logrus.Logger
}

// New returns a Logger backed by a freshly configured logrus.Logger.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return &logrusLogger{l: l}
}

func (g *logrusLogger) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g *logrusLogger) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }
func (g *logrusLogger) Debugf(format string, args ...interface{}) { g.l.Debugf(format, args...) }

// nullLogger discards everything. Used by tests that don't want log
// noise on stdout.
type nullLogger struct{}

// NewNullLogger returns a Logger that discards all messages.
func NewNullLogger() Logger { return &nullLogger{} }

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
