package internallogger_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/joeydtaylor/rtbsa/pkg/internal/internallogger"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/logschema"
)

func TestNewLogger_Levels(t *testing.T) {
	if got := internallogger.NewLogger().GetLevel(); got != types.InfoLevel {
		t.Fatalf("default level = %v, want info", got)
	}
	if got := internallogger.NewLogger(internallogger.LoggerWithLevel("DEBUG")).GetLevel(); got != types.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
	if got := internallogger.NewLogger(internallogger.LoggerWithLevel("unknown")).GetLevel(); got != types.InfoLevel {
		t.Fatalf("unknown level = %v, want info", got)
	}

	logger := internallogger.NewLogger()
	logger.SetLevel(types.ErrorLevel)
	if got := logger.GetLevel(); got != types.ErrorLevel {
		t.Fatalf("SetLevel: got %v", got)
	}
}

func TestLogger_Sinks(t *testing.T) {
	logger := internallogger.NewLogger(internallogger.LoggerWithLevel("debug"))
	path := filepath.Join(t.TempDir(), "nested", "rtbsa.log")

	if err := logger.AddSink("file", types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path}}); err != nil {
		t.Fatalf("AddSink(file): %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if err := logger.AddSink("out", types.SinkConfig{Type: "stdout"}); err != nil {
		t.Fatalf("AddSink(stdout): %v", err)
	}
	if err := logger.AddSink("err", types.SinkConfig{Type: "stderr"}); err != nil {
		t.Fatalf("AddSink(stderr): %v", err)
	}

	ids, _ := logger.ListSinks()
	if want := []string{"err", "file", "out"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ListSinks = %v, want %v", ids, want)
	}

	if err := logger.RemoveSink("out"); err != nil {
		t.Fatalf("RemoveSink: %v", err)
	}
	if err := logger.RemoveSink("out"); err == nil {
		t.Fatal("expected error removing a missing sink")
	}
}

func TestLogger_SinkLevelFloor(t *testing.T) {
	logger := internallogger.NewLogger(
		internallogger.LoggerWithLevel("debug"),
		internallogger.LoggerWithSession("s-9"),
	)
	path := filepath.Join(t.TempDir(), "warn.log")
	cfg := types.SinkConfig{Type: "file", Config: map[string]interface{}{"path": path, "level": "warn"}}
	if err := logger.AddSink("file", cfg); err != nil {
		t.Fatalf("AddSink: %v", err)
	}

	logger.Info("buffer seeded")
	logger.Warn("rate below minimum")
	if err := logger.RemoveSink("file"); err != nil {
		t.Fatalf("RemoveSink: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line in the warn sink, got %d", len(lines))
	}
	rec, err := logschema.ParseRecord([]byte(lines[0]))
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec.Level() != "warn" || rec.Message() != "rate below minimum" || rec.Session() != "s-9" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestLogger_AddSinkInvalid(t *testing.T) {
	logger := internallogger.NewLogger()

	if err := logger.AddSink("", types.SinkConfig{Type: "stdout"}); err != internallogger.ErrEmptySinkID {
		t.Fatalf("empty id: got %v", err)
	}
	if err := logger.AddSink("file", types.SinkConfig{Type: "file"}); err == nil {
		t.Fatal("expected error for missing file path")
	}
	if err := logger.AddSink("net", types.SinkConfig{Type: "network"}); err == nil {
		t.Fatal("expected error for unsupported sink type")
	}
}

func TestLogger_FlushAndOptions(t *testing.T) {
	logger := internallogger.NewLogger(
		internallogger.LoggerWithDevelopment(true),
		internallogger.LoggerWithCallerSkip(1),
		internallogger.LoggerWithSession("s-1"),
		internallogger.LoggerWithFields(map[string]interface{}{"host": "test", "": "dropped"}),
		internallogger.LoggerWithoutCaller(),
	)
	logger.Info("options", "slot", types.SlotA, "rate", types.Rate10Hz)
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
