// Package clog provides the logging facade used by every core package:
// a package-level Logger interface with a settable implementation, so
// call sites never depend on a concrete logging library directly.
package clog

// Logger is the clog logging interface every backend must satisfy.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

var logger Logger = NewLogrus()

// SetLogger installs a custom Logger implementation, replacing the
// default logrus-backed one.
func SetLogger(l Logger) { logger = l }

var verbosity int

// V reports whether the current clog verbosity is at or above level.
// Reasoning rounds gate their trace logging behind
// V(2) so production runs stay quiet by default.
func V(level int) bool { return verbosity >= level }

// SetV sets the clog verbosity level.
func SetV(level int) { verbosity = level }

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Warningf logs a warning message.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}

// Fatalf logs a fatal message and terminates the process.
func Fatalf(format string, args ...interface{}) {
	if logger != nil {
		logger.Fatalf(format, args...)
	}
}
