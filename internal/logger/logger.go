package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the leveled logger used across the service.
// args are appended to msg; errors and maps are printed with %+v.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Console writes leveled lines through gommon/log
type Console struct {
	l *log.Logger
}

var _ Logger = (*Console)(nil)

// New returns a Logger backed by gommon/log, the logger echo itself uses.
func New(prefix string, debug bool) *Console {
	l := log.New(prefix)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if debug {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.INFO)
	}
	return &Console{l: l}
}

// Gommon exposes the underlying logger so echo can share it.
func (c *Console) Gommon() *log.Logger {
	return c.l
}

func (c *Console) SetOutput(w io.Writer) {
	c.l.SetOutput(w)
}

func (c *Console) Debug(msg string, args ...interface{}) {
	c.l.Debug(format(msg, args))
}

func (c *Console) Info(msg string, args ...interface{}) {
	c.l.Info(format(msg, args))
}

func (c *Console) Warn(msg string, args ...interface{}) {
	c.l.Warn(format(msg, args))
}

func (c *Console) Error(msg string, args ...interface{}) {
	c.l.Error(format(msg, args))
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, arg := range args {
		fmt.Fprintf(&b, " | %+v", arg)
	}
	return b.String()
}

type nopLogger struct{}

// Nop returns a Logger that discards everything
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
