// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small structured-logging facade in the shape used by
// github.com/saferwall/pe/log (itself the go-kratos/kratos log package):
// a Logger is anything that can accept a flat slice of key/value pairs,
// Helper adds the printf-style Debugf/Infof/Warnf/Errorf convenience
// layer on top, and NewFilter wraps any Logger with a minimum severity
// level so callers don't have to build a conditional themselves.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a log severity, ordered so Filter can compare with <.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal interface every backend implements: a single Log
// call carrying a severity and an even-length slice of alternating keys
// and values.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes one line per Log call to an io.Writer.
type stdLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdLogger returns a Logger that formats each call as a timestamped,
// space-separated line of key=value pairs.
func NewStdLogger(out io.Writer) Logger {
	return &stdLogger{out: out}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf := make([]byte, 0, 64)
	buf = append(buf, time.Now().Format(time.RFC3339)...)
	buf = append(buf, ' ')
	buf = append(buf, level.String()...)
	for i := 0; i+1 < len(keyvals); i += 2 {
		buf = append(buf, ' ')
		buf = append(buf, fmt.Sprintf("%v=%v", keyvals[i], keyvals[i+1])...)
	}
	buf = append(buf, '\n')
	_, err := l.out.Write(buf)
	return err
}

// NewNopLogger returns a Logger that discards everything, used as the
// zero-configuration default when a caller passes no Logger at all.
func NewNopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Log(Level, ...interface{}) error { return nil }

// filter wraps a Logger, dropping any call below a minimum level.
type filter struct {
	logger Logger
	level  Level
}

// FilterOption configures NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a call must meet to reach the
// wrapped Logger.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// NewFilter returns a Logger that forwards to logger only calls at or
// above the configured level (LevelInfo if no FilterLevel option is
// given).
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{logger: logger, level: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods over a Logger, the same
// split the teacher's file.go relies on (a raw Logger configured once,
// a Helper used at every call site).
type Helper struct {
	logger Logger
}

// NewHelper wraps logger. A nil logger is replaced with NewNopLogger, so
// a zero-value Options.Logger never needs a nil check at call sites.
func NewHelper(logger Logger) *Helper {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, msg string) {
	_ = h.logger.Log(level, "msg", msg)
}

func (h *Helper) Debug(msg string)                    { h.log(LevelDebug, msg) }
func (h *Helper) Debugf(format string, a ...interface{}) { h.log(LevelDebug, fmt.Sprintf(format, a...)) }
func (h *Helper) Info(msg string)                     { h.log(LevelInfo, msg) }
func (h *Helper) Infof(format string, a ...interface{})  { h.log(LevelInfo, fmt.Sprintf(format, a...)) }
func (h *Helper) Warn(msg string)                     { h.log(LevelWarn, msg) }
func (h *Helper) Warnf(format string, a ...interface{})  { h.log(LevelWarn, fmt.Sprintf(format, a...)) }
func (h *Helper) Error(msg string)                    { h.log(LevelError, msg) }
func (h *Helper) Errorf(format string, a ...interface{}) { h.log(LevelError, fmt.Sprintf(format, a...)) }
func (h *Helper) Fatalf(format string, a ...interface{}) {
	h.log(LevelFatal, fmt.Sprintf(format, a...))
	os.Exit(1)
}
