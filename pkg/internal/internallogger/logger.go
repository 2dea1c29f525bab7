// Package internallogger implements types.Logger on zap. Every line is JSON
// keyed by the logschema field names, and rtbsa values (components, slots,
// rates, fits, frames) are written as compact objects.
package internallogger

import (
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerAdapter writes to stdout plus any sinks attached at runtime.
type ZapLoggerAdapter struct {
	mu     sync.Mutex
	logger *zap.Logger
	level  zap.AtomicLevel
	enc    zapcore.EncoderConfig
	stdout zapcore.Core
	static []zap.Field
	sinks  map[string]sink
	skip   int
	caller bool
}

// NewLogger builds a logger at info level unless an option says otherwise.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	st := settings{
		level:      zapcore.InfoLevel,
		callerSkip: 3,
		caller:     true,
		fields:     map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&st)
		}
	}

	enc := encoderConfig(st.development)
	level := zap.NewAtomicLevelAt(st.level)
	z := &ZapLoggerAdapter{
		level:  level,
		enc:    enc,
		stdout: zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stdout), level),
		static: fieldsFromMap(st.fields),
		sinks:  make(map[string]sink),
		skip:   st.callerSkip,
		caller: st.caller,
	}

	z.mu.Lock()
	z.rebuildLocked()
	z.mu.Unlock()
	return z
}

// encoderConfig keeps timestamps in UTC with nanoseconds. Production lines
// carry durations in milliseconds.
func encoderConfig(development bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        logschema.FieldTimestamp,
		LevelKey:       logschema.FieldLevel,
		NameKey:        logschema.FieldLogger,
		CallerKey:      logschema.FieldCaller,
		MessageKey:     logschema.FieldMessage,
		StacktraceKey:  logschema.FieldStack,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     utcNanos,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeDuration = zapcore.StringDurationEncoder
	}
	return cfg
}

func utcNanos(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}

func (z *ZapLoggerAdapter) rebuildLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.stdout)
	for _, s := range z.sinks {
		cores = append(cores, s.core)
	}

	opts := []zap.Option{zap.AddCallerSkip(z.skip)}
	if z.caller {
		opts = append(opts, zap.AddCaller())
	}
	z.logger = zap.New(zapcore.NewTee(cores...), opts...).With(z.static...)
}

func (z *ZapLoggerAdapter) current() *zap.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logger
}
