package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ngothanh/maat-hash/pkg/logger"
)

func TestTraceHandlerAddsSpanAttrsOnlyWhenValid(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	h := logger.NewTraceHandler(base)
	l := slog.New(h)

	l.InfoContext(context.Background(), "no span here")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if _, ok := decoded["trace_id"]; ok {
		t.Error("trace_id should not be present without a valid span in context")
	}
}

func TestInitDefaultsToInfoAndReturnsUsableLogger(t *testing.T) {
	l := logger.Init(logger.Config{Level: "bogus", Format: "TEXT"})
	if l == nil {
		t.Fatal("Init returned nil logger")
	}
	if logger.L() == nil {
		t.Fatal("L() returned nil after Init")
	}
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("an unknown level should fall back to info, which must be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("an unknown level should fall back to info, so debug must be disabled")
	}
}
