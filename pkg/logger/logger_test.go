package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerInitWriterNil(t *testing.T) {
	if err := InitWriter(nil); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().With(String("run_id", "abc")).Info(ctx, "run finished",
		Int("matches", 3),
		Float64("k_factor", 32),
		Bool("ok", true),
		Duration("elapsed", time.Second),
		Error(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{"run finished", "run_id=abc", "matches=3", "k_factor=32", "ok=true", "elapsed=1s", "error=boom", "source=logger_test.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("matchlog").Warn(context.Background(), "test message")

	if !strings.Contains(buf.String(), "component=matchlog") {
		t.Errorf("expected component field in %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Get().Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug should be enabled")
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug record missing: %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
	for _, lvl := range []string{"", "info", "warn", "warning", "error"} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("level %q: unexpected error %v", lvl, err)
		}
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("discard logger should not be enabled")
	}
	l.Error(context.Background(), "dropped")
}
