package session

import (
	"reflect"
	"sync"
	"testing"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type logEntry struct {
	msg string
	kv  map[string]interface{}
}

type recordLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordLogger) record(msg string, kv ...interface{}) {
	e := logEntry{msg: msg, kv: map[string]interface{}{}}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			e.kv[k] = kv[i+1]
		}
	}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

func (l *recordLogger) find(event string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.kv["event"] == event {
			return e, true
		}
	}
	return logEntry{}, false
}

func (l *recordLogger) GetLevel() types.LogLevel               { return types.DebugLevel }
func (l *recordLogger) SetLevel(types.LogLevel)                {}
func (l *recordLogger) Debug(msg string, kv ...interface{})    { l.record(msg, kv...) }
func (l *recordLogger) Info(msg string, kv ...interface{})     { l.record(msg, kv...) }
func (l *recordLogger) Warn(msg string, kv ...interface{})     { l.record(msg, kv...) }
func (l *recordLogger) Error(msg string, kv ...interface{})    { l.record(msg, kv...) }
func (l *recordLogger) DPanic(msg string, kv ...interface{})   { l.record(msg, kv...) }
func (l *recordLogger) Panic(msg string, kv ...interface{})    { l.record(msg, kv...) }
func (l *recordLogger) Fatal(msg string, kv ...interface{})    { l.record(msg, kv...) }
func (l *recordLogger) Flush() error                           { return nil }
func (l *recordLogger) AddSink(string, types.SinkConfig) error { return nil }
func (l *recordLogger) RemoveSink(string) error                { return nil }
func (l *recordLogger) ListSinks() ([]string, error)           { return nil, nil }

func TestArmLogsFilterChain(t *testing.T) {
	logger := &recordLogger{}
	s := NewSession(
		WithMode(types.ModeCorrelation),
		WithStdDevFilter(true, 3),
		WithLogger(logger),
	)
	if err := s.Arm(filterchain.PeakCurrentDevice, "B"); err != nil {
		t.Fatal(err)
	}

	e, ok := logger.find("Arm")
	if !ok {
		t.Fatal("no Arm log entry")
	}
	if e.msg != StatusInitializing {
		t.Fatalf("msg = %q", e.msg)
	}
	want := []string{"finite[A B]", "below(12000)[A]", "deviation(3)[A]", "deviation(3)[B]"}
	if got := e.kv["filters"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("filters = %v, want %v", got, want)
	}
}
