package internallogger

import (
	"github.com/joeydtaylor/rtbsa/pkg/logschema"
	"go.uber.org/zap/zapcore"
)

type settings struct {
	level       zapcore.Level
	development bool
	fields      map[string]interface{}
	callerSkip  int
	caller      bool
}

// LoggerOption adjusts a logger before it is built.
type LoggerOption func(*settings)

// LoggerWithLevel configures the logger to use the specified log level.
// Unknown names select info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *settings) { s.level = zapLevel(ParseLevel(levelStr)) }
}

// LoggerWithDevelopment switches to capitalized levels and readable durations.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *settings) { s.development = dev }
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *settings) {
		for key, value := range fields {
			if key != "" {
				s.fields[key] = value
			}
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *settings) { s.fields[logschema.FieldSchema] = schema }
}

// LoggerWithSession stamps every line with a session id.
func LoggerWithSession(id string) LoggerOption {
	return func(s *settings) {
		if id != "" {
			s.fields[logschema.FieldSession] = id
		}
	}
}

func LoggerWithoutCaller() LoggerOption {
	return func(s *settings) { s.caller = false }
}

// LoggerWithCallerSkip adds frames to skip when a component wraps the logger.
func LoggerWithCallerSkip(skip int) LoggerOption {
	return func(s *settings) { s.callerSkip += skip }
}
