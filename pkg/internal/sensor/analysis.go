package sensor

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

func (s *Sensor) RegisterOnRefresh(callback ...func(types.ComponentMetadata, types.Frame, time.Duration)) {
	s.onRefresh.add(callback...)
}

func (s *Sensor) RegisterOnFitFailure(callback ...func(types.ComponentMetadata, types.FitResult)) {
	s.onFitFailure.add(callback...)
}

func (s *Sensor) RegisterOnFramePublished(callback ...func(types.ComponentMetadata, string, int)) {
	s.onFramePublished.add(callback...)
}

// InvokeOnRefresh fires after every refresh with the produced frame and the
// time spent computing it.
func (s *Sensor) InvokeOnRefresh(c types.ComponentMetadata, f types.Frame, took time.Duration) {
	for _, cb := range s.onRefresh.list() {
		if cb != nil {
			cb(c, f, took)
		}
	}
}

func (s *Sensor) InvokeOnFitFailure(c types.ComponentMetadata, res types.FitResult) {
	for _, cb := range s.onFitFailure.list() {
		if cb != nil {
			cb(c, res)
		}
	}
}

// InvokeOnFramePublished fires after a publisher delivered size bytes to topic.
func (s *Sensor) InvokeOnFramePublished(c types.ComponentMetadata, topic string, size int) {
	for _, cb := range s.onFramePublished.list() {
		if cb != nil {
			cb(c, topic, size)
		}
	}
}
