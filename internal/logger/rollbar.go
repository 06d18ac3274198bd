package logger

import (
	"github.com/rollbar/rollbar-go"
)

// RollbarOptions configures the rollbar reporter
type RollbarOptions struct {
	Token       string
	Environment string
	CodeVersion string
}

type rollbarLogger struct {
	base Logger
}

var _ Logger = (*rollbarLogger)(nil)

// NewRollbar wraps base so that warnings and errors are also reported to rollbar.
func NewRollbar(base Logger, opts RollbarOptions) Logger {
	rollbar.SetToken(opts.Token)
	rollbar.SetEnvironment(opts.Environment)
	if opts.CodeVersion != "" {
		rollbar.SetCodeVersion(opts.CodeVersion)
	}
	return &rollbarLogger{base: base}
}

// Flush blocks until queued rollbar items are sent
func Flush() {
	rollbar.Wait()
}

func (l *rollbarLogger) Debug(msg string, args ...interface{}) {
	l.base.Debug(msg, args...)
}

func (l *rollbarLogger) Info(msg string, args ...interface{}) {
	l.base.Info(msg, args...)
}

func (l *rollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(append([]interface{}{msg}, args...)...)
	l.base.Warn(msg, args...)
}

func (l *rollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(append([]interface{}{msg}, args...)...)
	l.base.Error(msg, args...)
}
