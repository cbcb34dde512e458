package repaint

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("Logger().Enabled(%v) = true, want false", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Warn("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q, want it to contain hello", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestWarnOutsideFrame(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s, _ := newTestSurface(DefaultConfig())
	if s.AllocateCommand() != nil {
		t.Error("AllocateCommand() outside a frame != nil")
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("log output = %q, want a warning for AllocateCommand outside a frame", buf.String())
	}
}
