package internallogger

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLoggerAdapter, *observer.ObservedLogs) {
	z := NewLogger(LoggerWithLevel("debug"))
	core, logs := observer.New(level)
	z.mu.Lock()
	z.logger = zap.New(core)
	z.mu.Unlock()
	return z, logs
}

func TestLog_PairsAndOrphans(t *testing.T) {
	z, logs := observed(zapcore.DebugLevel)

	z.Log(types.InfoLevel, "msg", "a", "b", 123, "skip", "c", 3, "orphan")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if len(ctx) != 3 {
		t.Fatalf("expected 3 fields, got %v", ctx)
	}
	if ctx["a"] != "b" || ctx["c"] != int64(3) || ctx["extra"] != "orphan" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
}

func TestLog_RespectsCoreLevel(t *testing.T) {
	z, logs := observed(zapcore.WarnLevel)

	z.Log(types.InfoLevel, "info")
	z.Log(types.WarnLevel, "warn")

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected a single warn entry, got %+v", entries)
	}
}

func TestLog_DomainValues(t *testing.T) {
	z, logs := observed(zapcore.DebugLevel)

	meta := types.ComponentMetadata{ID: "id-1", Type: "RATE_GATE", Name: "gate"}
	z.Log(types.InfoLevel, "msg",
		"component", meta,
		"slot", types.SlotB,
		"mode", types.ModeSpectrum,
		"rate", types.Rate120Hz,
		"unknown_rate", types.RateUndefined,
		"update", types.UpdateResult{Applied: true, ElapsedPoints: 3, MissingInserted: 2, Reason: types.UpdateApplied},
	)

	ctx := logs.All()[0].ContextMap()
	comp, ok := ctx["component"].(map[string]interface{})
	if !ok || comp["id"] != "id-1" || comp["type"] != "RATE_GATE" || comp["name"] != "gate" {
		t.Fatalf("component = %#v", ctx["component"])
	}
	if ctx["slot"] != "B" || ctx["mode"] != "spectrum" {
		t.Fatalf("slot/mode = %v/%v", ctx["slot"], ctx["mode"])
	}
	rate := ctx["rate"].(map[string]interface{})
	if rate["code"] != 6 || rate["hz"] != 120.0 {
		t.Fatalf("rate = %v", rate)
	}
	if _, has := ctx["unknown_rate"].(map[string]interface{})["hz"]; has {
		t.Fatal("undefined rate must not carry hz")
	}
	upd := ctx["update"].(map[string]interface{})
	if upd["applied"] != true || upd["elapsed"] != 3 || upd["missing"] != 2 || upd["reason"] != "applied" {
		t.Fatalf("update = %v", upd)
	}
}

func TestLog_FrameShape(t *testing.T) {
	z, logs := observed(zapcore.DebugLevel)

	frame := types.Frame{
		SessionID: "s-1",
		Sequence:  7,
		Mode:      types.ModeCorrelation,
		Y:         []float64{1, 2, 3},
		Kind:      types.ResultNumericFailure,
		Status:    "Fit failed",
		Fit: types.FitResult{
			Kind: types.FitPolynomial, Order: 2, Status: types.FitFailed,
			Summary: "Fit failed", Err: errors.New("leading coefficient is zero"),
		},
	}
	z.Log(types.DebugLevel, "refresh", "frame", frame)

	f := logs.All()[0].ContextMap()["frame"].(map[string]interface{})
	if f["session"] != "s-1" || f["sequence"] != uint64(7) || f["points"] != 3 || f["kind"] != "numeric_failure" {
		t.Fatalf("frame = %v", f)
	}
	fit := f["fit"].(map[string]interface{})
	if fit["kind"] != "polynomial" || fit["status"] != "Fit failed" || fit["error"] != "leading coefficient is zero" {
		t.Fatalf("fit = %v", fit)
	}
}

func TestLog_NilLogger(t *testing.T) {
	z := NewLogger()
	z.mu.Lock()
	z.logger = nil
	z.mu.Unlock()

	z.Log(types.InfoLevel, "msg")
	if err := z.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestLevels(t *testing.T) {
	cases := map[string]types.LogLevel{
		"debug":   types.DebugLevel,
		" Info ":  types.InfoLevel,
		"WARNING": types.WarnLevel,
		"error":   types.ErrorLevel,
		"dpanic":  types.DPanicLevel,
		"panic":   types.PanicLevel,
		"fatal":   types.FatalLevel,
		"bogus":   types.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	for _, l := range levelTable {
		if fromZap(zapLevel(l.own)) != l.own {
			t.Errorf("round trip failed for %s", l.name)
		}
	}
	if zapLevel(types.LogLevel(99)) != zapcore.InfoLevel || fromZap(zapcore.Level(99)) != types.InfoLevel {
		t.Error("out-of-range levels must map to info")
	}
}

func TestUnsyncable(t *testing.T) {
	tty := &os.PathError{Op: "sync", Path: "/dev/stdout", Err: syscall.EINVAL}
	if !unsyncable(tty) {
		t.Error("EINVAL on sync should be ignored")
	}
	if !unsyncable(multierr.Combine(tty, &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY})) {
		t.Error("combined terminal errors should be ignored")
	}
	if unsyncable(multierr.Combine(tty, errors.New("disk full"))) {
		t.Error("a real write failure must surface")
	}
}
