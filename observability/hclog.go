package observability

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

type hcLogger struct {
	l hclog.Logger
}

// NewHCLogger returns a Logger backed by go-hclog. A nil writer logs to stderr.
func NewHCLogger(name, level string, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return hcLogger{l: hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  ParseLevel(level),
	})}
}

// ParseLevel maps a level name to an hclog level, defaulting to info.
func ParseLevel(level string) hclog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN", "WARNING":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	case "OFF":
		return hclog.Off
	default:
		return hclog.Info
	}
}

func (h hcLogger) Debug(msg string, fields ...Field) { h.l.Debug(msg, args(fields)...) }
func (h hcLogger) Info(msg string, fields ...Field)  { h.l.Info(msg, args(fields)...) }
func (h hcLogger) Warn(msg string, fields ...Field)  { h.l.Warn(msg, args(fields)...) }
func (h hcLogger) Error(msg string, fields ...Field) { h.l.Error(msg, args(fields)...) }

func (h hcLogger) With(fields ...Field) Logger {
	return hcLogger{l: h.l.With(args(fields)...)}
}

func args(fields []Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key(), f.Value())
	}
	return out
}
