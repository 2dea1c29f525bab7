package sensor

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	s.onStart.add(callback...)
}

func (s *Sensor) RegisterOnStop(callback ...func(types.ComponentMetadata)) {
	s.onStop.add(callback...)
}

func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	s.onError.add(callback...)
}

// InvokeOnStart fires when a component begins serving.
func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	for _, cb := range s.onStart.list() {
		if cb != nil {
			cb(c)
		}
	}
}

func (s *Sensor) InvokeOnStop(c types.ComponentMetadata) {
	for _, cb := range s.onStop.list() {
		if cb != nil {
			cb(c)
		}
	}
}

// InvokeOnError reports a component failure that did not stop the session,
// such as a dropped connection or an undecodable record.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	for _, cb := range s.onError.list() {
		if cb != nil {
			cb(c, err)
		}
	}
}
