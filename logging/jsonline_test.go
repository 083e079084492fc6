package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON line %q: %v", line, err)
	}
	return m
}

func TestJSONLineHandler_BasicRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONLineHandler(&buf, slog.LevelInfo))

	logger.Info("frame complete", "turn", 12, "dt", 50*time.Millisecond)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["msg"] != "frame complete" {
		t.Fatalf("msg=%v want=frame complete", m["msg"])
	}
	if m["level"] != "INFO" {
		t.Fatalf("level=%v want=INFO", m["level"])
	}
	if m["turn"] != float64(12) {
		t.Fatalf("turn=%v want=12", m["turn"])
	}
	if m["dt"] != "50ms" {
		t.Fatalf("dt=%v want=50ms", m["dt"])
	}
}

func TestJSONLineHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONLineHandler(&buf, slog.LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines=%d want=1: %q", len(lines), buf.String())
	}
	if m := decodeLine(t, lines[0]); m["msg"] != "kept" {
		t.Fatalf("msg=%v want=kept", m["msg"])
	}
}

func TestJSONLineHandler_GroupsFlattenToDottedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewJSONLineHandler(&buf, slog.LevelInfo))

	logger.With(slog.Group("engine", "arena", "10x10")).WithGroup("frame").Info("tick", "turn", 3)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["engine.arena"] != "10x10" {
		t.Fatalf("engine.arena=%v want=10x10", m["engine.arena"])
	}
	if m["frame.turn"] != float64(3) {
		t.Fatalf("frame.turn=%v want=3", m["frame.turn"])
	}
}
