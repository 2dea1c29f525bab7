package sensor

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

func (s *Sensor) RegisterOnEvent(callback ...func(types.ComponentMetadata, types.Event)) {
	s.onEvent.add(callback...)
}

func (s *Sensor) RegisterOnSnapshot(callback ...func(types.ComponentMetadata, types.Slot, int)) {
	s.onSnapshot.add(callback...)
}

func (s *Sensor) RegisterOnUpdateApplied(callback ...func(types.ComponentMetadata, types.Slot, types.UpdateResult)) {
	s.onUpdateApplied.add(callback...)
}

func (s *Sensor) RegisterOnUpdateDropped(callback ...func(types.ComponentMetadata, types.Slot, types.UpdateResult)) {
	s.onUpdateDropped.add(callback...)
}

func (s *Sensor) RegisterOnRateWaiting(callback ...func(types.ComponentMetadata, types.RateCode, float64)) {
	s.onRateWaiting.add(callback...)
}

func (s *Sensor) RegisterOnRateResumed(callback ...func(types.ComponentMetadata, types.RateCode)) {
	s.onRateResumed.add(callback...)
}

// InvokeOnEvent fires once per event accepted from a source.
func (s *Sensor) InvokeOnEvent(c types.ComponentMetadata, ev types.Event) {
	for _, cb := range s.onEvent.list() {
		if cb != nil {
			cb(c, ev)
		}
	}
}

// InvokeOnSnapshot fires after a history snapshot seeded slot with n samples.
func (s *Sensor) InvokeOnSnapshot(c types.ComponentMetadata, slot types.Slot, n int) {
	for _, cb := range s.onSnapshot.list() {
		if cb != nil {
			cb(c, slot, n)
		}
	}
}

func (s *Sensor) InvokeOnUpdateApplied(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult) {
	for _, cb := range s.onUpdateApplied.list() {
		if cb != nil {
			cb(c, slot, res)
		}
	}
}

func (s *Sensor) InvokeOnUpdateDropped(c types.ComponentMetadata, slot types.Slot, res types.UpdateResult) {
	for _, cb := range s.onUpdateDropped.list() {
		if cb != nil {
			cb(c, slot, res)
		}
	}
}

// InvokeOnRateWaiting fires at each status interval while a caller is blocked
// below thresholdHz.
func (s *Sensor) InvokeOnRateWaiting(c types.ComponentMetadata, code types.RateCode, thresholdHz float64) {
	for _, cb := range s.onRateWaiting.list() {
		if cb != nil {
			cb(c, code, thresholdHz)
		}
	}
}

func (s *Sensor) InvokeOnRateResumed(c types.ComponentMetadata, code types.RateCode) {
	for _, cb := range s.onRateResumed.list() {
		if cb != nil {
			cb(c, code)
		}
	}
}
