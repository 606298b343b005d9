package sortreel

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

var allLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func TestDiscardHandler(t *testing.T) {
	var h slog.Handler = discard{}
	for _, level := range allLevels {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("frame", 1)}).(discard); !ok {
		t.Error("WithAttrs() did not return a discard handler")
	}
	if _, ok := h.WithGroup("render").(discard); !ok {
		t.Error("WithGroup() did not return a discard handler")
	}
}

// captureLogger installs a debug-level text logger for the duration of t.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestLoggerDefaultSilent(t *testing.T) {
	for _, level := range allLevels {
		if Logger().Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogger(t)

	Logger().Info("render started", "algorithm", "merge")
	if out := buf.String(); !strings.Contains(out, "render started") || !strings.Contains(out, "algorithm=merge") {
		t.Errorf("log output = %q", out)
	}

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestComponent(t *testing.T) {
	buf := captureLogger(t)

	Component("render").Debug("frame limit reached", "frames", 12)
	out := buf.String()
	for _, want := range []string{"component=render", "frames=12"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Component("machine").Debug("step")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabled(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "frame", 1)
	}
}
