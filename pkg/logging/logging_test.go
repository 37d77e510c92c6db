package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("Group buy created", "group_buy_id", "g1")
	logger.Warn("Intent rejected", "action", "add_order")

	out := buf.String()
	if strings.Contains(out, "Group buy created") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "Intent rejected") || !strings.Contains(out, "action=add_order") {
		t.Errorf("missing warn record in %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no color codes for a non-terminal writer")
	}
}
