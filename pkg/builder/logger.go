package builder

import (
	internalLogger "github.com/joeydtaylor/rtbsa/pkg/internal/internallogger"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/logschema"
)

type LoggerOption = internalLogger.LoggerOption

type Logger = types.Logger

type SinkConfig = types.SinkConfig

type SinkType = types.SinkType

const (
	FileSink   SinkType = types.FileSink
	StdoutSink SinkType = types.StdoutSink
	StderrSink SinkType = types.StderrSink
)

// NewLogger builds the zap-backed logger. Without options it logs JSON at
// info level to stdout.
func NewLogger(options ...LoggerOption) types.Logger {
	return internalLogger.NewLogger(options...)
}

// LoggerWithLevel accepts debug, info, warn (or warning), error, dpanic,
// panic and fatal. Anything else selects info.
func LoggerWithLevel(level string) LoggerOption { return internalLogger.LoggerWithLevel(level) }

func LoggerWithDevelopment(dev bool) LoggerOption { return internalLogger.LoggerWithDevelopment(dev) }

// LoggerWithFields adds constant fields to every line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return internalLogger.LoggerWithFields(fields)
}

func LoggerWithSchema(schema string) LoggerOption { return internalLogger.LoggerWithSchema(schema) }

// LoggerWithSession stamps every line with the session id.
func LoggerWithSession(id string) LoggerOption { return internalLogger.LoggerWithSession(id) }

// FileSinkConfig returns a sink appending JSON lines to path.
func FileSinkConfig(path string) SinkConfig {
	return SinkConfig{Type: string(FileSink), Config: map[string]interface{}{"path": path}}
}

// WithSinkLevel returns a copy of cfg that only receives lines at level or
// above.
func WithSinkLevel(cfg SinkConfig, level string) SinkConfig {
	out := SinkConfig{Type: cfg.Type, Config: make(map[string]interface{}, len(cfg.Config)+1)}
	for k, v := range cfg.Config {
		out.Config[k] = v
	}
	out.Config["level"] = level
	return out
}

const (
	LogSchemaID    = logschema.SchemaID
	LogSchemaField = logschema.FieldSchema
)

// ParseLogRecord decodes one line written by a rtbsa logger.
func ParseLogRecord(line []byte) (logschema.LogRecord, error) { return logschema.ParseRecord(line) }

type LogLevel = types.LogLevel

const (
	DebugLevel  = types.DebugLevel
	InfoLevel   = types.InfoLevel
	WarnLevel   = types.WarnLevel
	ErrorLevel  = types.ErrorLevel
	DPanicLevel = types.DPanicLevel
	PanicLevel  = types.PanicLevel
	FatalLevel  = types.FatalLevel
)
