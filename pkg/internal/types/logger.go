package types

// LogLevel orders log severities; a logger drops lines below its level.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	DPanicLevel // panics in development builds only
	PanicLevel
	FatalLevel
)

// SinkType selects where an extra log sink writes.
type SinkType string

const (
	FileSink   SinkType = "file"
	StdoutSink SinkType = "stdout"
	StderrSink SinkType = "stderr"
)

// SinkConfig describes an extra sink. Config keys: "path" for file sinks and
// an optional "level" floor for any sink.
type SinkConfig struct {
	Type   string
	Config map[string]interface{}
}

// Logger is the structured logger every component reports through. Variadic
// arguments alternate string keys and values.
type Logger interface {
	GetLevel() LogLevel
	SetLevel(LogLevel)

	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	DPanic(msg string, keysAndValues ...interface{})
	Panic(msg string, keysAndValues ...interface{})
	Fatal(msg string, keysAndValues ...interface{})

	Flush() error

	AddSink(identifier string, config SinkConfig) error
	RemoveSink(identifier string) error
	ListSinks() ([]string, error)
}
