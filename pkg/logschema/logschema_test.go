package logschema_test

import (
	"errors"
	"testing"

	"github.com/joeydtaylor/rtbsa/pkg/logschema"
)

func TestParseRecord(t *testing.T) {
	line := []byte(`{"level":"WARN","ts":"2024-01-01T00:00:00Z","msg":"Rate below minimum","log_schema":"rtbsa.log.v1",` +
		`"session_id":"s-1","component":{"id":"g-1","type":"RATE_GATE"},"event":"RateWait"}`)
	r, err := logschema.ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if r.Level() != "warn" || r.Message() != "Rate below minimum" || r.Event() != "RateWait" || r.Session() != "s-1" {
		t.Fatalf("unexpected record %v", r)
	}
	if typ, id := r.Component(); typ != "RATE_GATE" || id != "g-1" {
		t.Fatalf("component = %s/%s", typ, id)
	}
}

func TestParseRecordRejectsForeignLines(t *testing.T) {
	if _, err := logschema.ParseRecord([]byte(`{"msg":"hello","log_schema":"other.v2"}`)); !errors.Is(err, logschema.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if _, err := logschema.ParseRecord([]byte(`not json`)); err == nil {
		t.Fatal("expected a decode error")
	}
	r := logschema.LogRecord{}
	if typ, id := r.Component(); typ != "" || id != "" {
		t.Fatal("missing component should be empty")
	}
}
