package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAppLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("Document validated", "path", "/tmp/a.pdf", "pages", 3)
	l.Error("Download failed", errors.New("boom"), "bucket", "docs")
	l.Debug("step", "name", "render")
	l.Warn("slow")

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	info := entries[0].ContextMap()
	if info["path"] != "/tmp/a.pdf" || info["pages"] != int64(3) {
		t.Fatalf("unexpected info fields: %v", info)
	}

	errEntry := entries[1]
	if errEntry.Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", errEntry.Level)
	}
	if fields := errEntry.ContextMap(); fields["error"] != "boom" || fields["bucket"] != "docs" {
		t.Fatalf("unexpected error fields: %v", fields)
	}
	if entries[3].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[3].Level)
	}
}

func TestAppLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := NewFromZap(zap.New(core))

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if logs.Len() != 1 {
		t.Fatalf("expected only the warning to be recorded, got %d entries", logs.Len())
	}
}

func TestNewLogger(t *testing.T) {
	if NewLogger("debug") == nil {
		t.Fatalf("expected a logger")
	}
}
