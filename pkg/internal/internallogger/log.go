package internallogger

import (
	"errors"
	"syscall"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"go.uber.org/multierr"
)

// Log writes msg at level with keysAndValues as structured fields.
func (z *ZapLoggerAdapter) Log(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	logger := z.current()
	if logger == nil {
		return
	}
	if ce := logger.Check(zapLevel(level), msg); ce != nil {
		ce.Write(fieldsFromPairs(keysAndValues)...)
	}
}

func (z *ZapLoggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.Log(types.DebugLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.Log(types.InfoLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.Log(types.WarnLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.Log(types.ErrorLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) DPanic(msg string, keysAndValues ...interface{}) {
	z.Log(types.DPanicLevel, msg, keysAndValues...)
}

// Panic logs and then panics.
func (z *ZapLoggerAdapter) Panic(msg string, keysAndValues ...interface{}) {
	z.Log(types.PanicLevel, msg, keysAndValues...)
}

// Fatal logs and then exits the process.
func (z *ZapLoggerAdapter) Fatal(msg string, keysAndValues ...interface{}) {
	z.Log(types.FatalLevel, msg, keysAndValues...)
}

func (z *ZapLoggerAdapter) GetLevel() types.LogLevel {
	return fromZap(z.level.Level())
}

// SetLevel changes the floor for stdout and every sink at once.
func (z *ZapLoggerAdapter) SetLevel(level types.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

// Flush syncs stdout and all sinks.
func (z *ZapLoggerAdapter) Flush() error {
	logger := z.current()
	if logger == nil {
		return nil
	}
	if err := logger.Sync(); err != nil && !unsyncable(err) {
		return err
	}
	return nil
}

// unsyncable reports whether every error in err comes from syncing a
// terminal or pipe, which the OS rejects with EINVAL, ENOTTY or EBADF.
func unsyncable(err error) bool {
	for _, e := range multierr.Errors(err) {
		if !errors.Is(e, syscall.EINVAL) && !errors.Is(e, syscall.ENOTTY) && !errors.Is(e, syscall.EBADF) {
			return false
		}
	}
	return true
}
