// Package sensor fans component lifecycle and stream events out to user
// callbacks and connected meters.
package sensor

import (
	"sync"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

// Sensor implements types.Sensor.
type Sensor struct {
	metaLock sync.RWMutex
	meta     types.ComponentMetadata

	onStart          hooks[func(types.ComponentMetadata)]
	onStop           hooks[func(types.ComponentMetadata)]
	onError          hooks[func(types.ComponentMetadata, error)]
	onEvent          hooks[func(types.ComponentMetadata, types.Event)]
	onSnapshot       hooks[func(types.ComponentMetadata, types.Slot, int)]
	onUpdateApplied  hooks[func(types.ComponentMetadata, types.Slot, types.UpdateResult)]
	onUpdateDropped  hooks[func(types.ComponentMetadata, types.Slot, types.UpdateResult)]
	onRateWaiting    hooks[func(types.ComponentMetadata, types.RateCode, float64)]
	onRateResumed    hooks[func(types.ComponentMetadata, types.RateCode)]
	onRefresh        hooks[func(types.ComponentMetadata, types.Frame, time.Duration)]
	onFitFailure     hooks[func(types.ComponentMetadata, types.FitResult)]
	onFramePublished hooks[func(types.ComponentMetadata, string, int)]

	loggers hooks[types.Logger]
	meters  hooks[types.Meter]
}

// NewSensor applies options in order, then registers the callbacks that feed
// connected meters, so user callbacks always run first.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{meta: types.ComponentMetadata{ID: utils.GenerateUniqueHash(), Type: "SENSOR"}}
	for _, opt := range s.decorateCallbacks(options...) {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Sensor) GetComponentMetadata() types.ComponentMetadata {
	s.metaLock.RLock()
	defer s.metaLock.RUnlock()
	return s.meta
}

// SetComponentMetadata keeps the SENSOR type.
func (s *Sensor) SetComponentMetadata(name string, id string) {
	s.metaLock.Lock()
	s.meta.Name, s.meta.ID = name, id
	s.metaLock.Unlock()
}

func (s *Sensor) ConnectLogger(loggers ...types.Logger) { s.loggers.add(loggers...) }

func (s *Sensor) ConnectMeter(meters ...types.Meter) { s.meters.add(meters...) }

// GetMeters returns a copy of the connected meters.
func (s *Sensor) GetMeters() []types.Meter { return s.meters.list() }

func (s *Sensor) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	for _, logger := range s.loggers.list() {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}
