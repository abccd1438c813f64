// Copyright 2024 The gojvm Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"
)

type recordingLogger struct {
	calls []Level
}

func (r *recordingLogger) Log(level Level, keyvals ...interface{}) error {
	r.calls = append(r.calls, level)
	return nil
}

func TestFilterDropsBelowLevel(t *testing.T) {
	rec := &recordingLogger{}
	f := NewFilter(rec, FilterLevel(LevelWarn))

	f.Log(LevelDebug, "msg", "ignored")
	f.Log(LevelInfo, "msg", "ignored")
	f.Log(LevelWarn, "msg", "kept")
	f.Log(LevelError, "msg", "kept")

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v, want 2 entries at or above LevelWarn", rec.calls)
	}
}

func TestFilterDefaultLevelIsInfo(t *testing.T) {
	rec := &recordingLogger{}
	f := NewFilter(rec)

	f.Log(LevelDebug, "msg", "ignored")
	f.Log(LevelInfo, "msg", "kept")

	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v, want 1 entry at LevelInfo", rec.calls)
	}
}

func TestStdLoggerFormatsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf)
	if err := l.Log(LevelInfo, "msg", "hello", "count", 3); err != nil {
		t.Fatalf("Log: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "msg=hello") || !strings.Contains(out, "count=3") {
		t.Fatalf("stdLogger output = %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	if err := NewNopLogger().Log(LevelError, "msg", "whatever"); err != nil {
		t.Fatalf("NewNopLogger().Log: %v", err)
	}
}

func TestNewHelperNilLoggerIsSafe(t *testing.T) {
	h := NewHelper(nil)
	h.Debugf("never seen: %d", 1)
	h.Errorf("never seen either")
}

func TestHelperFormatsMessages(t *testing.T) {
	rec := &recordingLogger{}
	h := NewHelper(rec)
	h.Infof("count is %d", 5)
	h.Warn("plain message")

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v, want 2", rec.calls)
	}
	if rec.calls[0] != LevelInfo || rec.calls[1] != LevelWarn {
		t.Fatalf("calls = %v, want [Info Warn]", rec.calls)
	}
}
