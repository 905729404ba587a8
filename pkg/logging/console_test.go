package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsole(&buf, slog.LevelInfo, false))

	log.Info("device header", "model", "SN2700", "version", "5.9")
	log.Debug("should be filtered")
	log.Warn("unexpected top-level type", "kind", "string")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "INFO device header") || !strings.Contains(lines[0], "model=SN2700") {
		t.Errorf("info line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "WARN") || !strings.Contains(lines[1], "kind=string") {
		t.Errorf("warn line = %q", lines[1])
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("color escapes present with colorize off: %q", out)
	}
}

func TestConsoleHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewConsole(&buf, slog.LevelDebug, false))

	log.With("section", "interface").WithGroup("doc").Info("skipped", "kind", "bool")

	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, "section=interface") || !strings.Contains(out, "doc.kind=bool") {
		t.Errorf("attr formatting: %q", out)
	}
}
