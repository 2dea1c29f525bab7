package internallogger

import (
	"strings"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelTable = [...]struct {
	name string
	own  types.LogLevel
	zap  zapcore.Level
}{
	{"debug", types.DebugLevel, zapcore.DebugLevel},
	{"info", types.InfoLevel, zapcore.InfoLevel},
	{"warn", types.WarnLevel, zapcore.WarnLevel},
	{"error", types.ErrorLevel, zapcore.ErrorLevel},
	{"dpanic", types.DPanicLevel, zapcore.DPanicLevel},
	{"panic", types.PanicLevel, zapcore.PanicLevel},
	{"fatal", types.FatalLevel, zapcore.FatalLevel},
}

// ParseLevel maps a configured level name to a LogLevel. Matching ignores
// case and surrounding blanks, "warning" is accepted for warn, and anything
// else is info.
func ParseLevel(name string) types.LogLevel {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	for _, l := range levelTable {
		if l.name == name {
			return l.own
		}
	}
	return types.InfoLevel
}

func zapLevel(level types.LogLevel) zapcore.Level {
	for _, l := range levelTable {
		if l.own == level {
			return l.zap
		}
	}
	return zapcore.InfoLevel
}

func fromZap(level zapcore.Level) types.LogLevel {
	for _, l := range levelTable {
		if l.zap == level {
			return l.own
		}
	}
	return types.InfoLevel
}
