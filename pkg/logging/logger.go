// Package logging provides the logging interface used by every component
// that reports library-internal failures.
package logging

import (
	"fmt"

	"github.com/golang/glog"
)

// Logger wraps glog behind a small method set so the rest of the module
// never imports glog directly.
type Logger struct {
	debug bool
}

// NewLogger creates a new logger. When debug is true, Debug/Debugf messages
// are emitted at glog's verbose level 1; otherwise they are suppressed.
func NewLogger(debug bool) *Logger {
	return &Logger{debug: debug}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	glog.Info(msg)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...any) {
	glog.Infof(format, args...)
}

// Debug logs a debug message when the logger was constructed with debug=true.
func (l *Logger) Debug(msg string) {
	if l.debug {
		glog.V(1).Info(msg)
	}
}

// Debugf logs a formatted debug message when debug=true.
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		glog.V(1).Infof(format, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	glog.Warning(msg)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...any) {
	glog.Warningf(format, args...)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	glog.Error(err.Error())
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	glog.Errorf(format, args...)
}

// MaybeError logs err if it is not nil.
func (l *Logger) MaybeError(err error) {
	if err != nil {
		glog.Error(err.Error())
	}
}

// WithContext returns err wrapped as fmt.Errorf("%s: %w", msg, err), so
// errors.Is still matches the original error.
func WithContext(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// DefaultLogger returns a logger with debug output disabled.
func DefaultLogger() *Logger {
	return NewLogger(false)
}
