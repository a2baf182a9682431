package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestWithContextCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)
	defer Init("info", false)

	ctx := NewContext(context.Background(), "request_id", "r-1")
	ctx = NewContext(ctx, "person_id", "p-1")
	WithContext(ctx).Info("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["request_id"] != "r-1" || line["person_id"] != "p-1" {
		t.Fatalf("missing context attributes: %v", line)
	}
}
