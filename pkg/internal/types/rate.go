package types

import (
	"context"
	"fmt"
)

// RateCode is the facility pulse-rate state as published by the timing system.
// Code 0 means the rate is not known yet and must never be used for arithmetic.
type RateCode int

const (
	RateUndefined RateCode = iota
	Rate0Hz
	Rate1Hz
	Rate10Hz
	Rate30Hz
	Rate60Hz
	Rate120Hz
)

var rateHz = [...]float64{
	Rate0Hz:   0,
	Rate1Hz:   1,
	Rate10Hz:  10,
	Rate30Hz:  30,
	Rate60Hz:  60,
	Rate120Hz: 120,
}

// Hz maps the code to a sample rate. ok is false for RateUndefined and for
// codes outside the published range.
func (c RateCode) Hz() (hz float64, ok bool) {
	if c <= RateUndefined || int(c) >= len(rateHz) {
		return 0, false
	}
	return rateHz[c], true
}

// Valid reports whether the code is within the published range (including undefined).
func (c RateCode) Valid() bool {
	return c >= RateUndefined && int(c) < len(rateHz)
}

func (c RateCode) String() string {
	hz, ok := c.Hz()
	if !ok {
		return "undefined"
	}
	return fmt.Sprintf("%gHz", hz)
}

// RateSource yields the latest rate code known to the host.
type RateSource interface {
	RateCode() RateCode
}

// RateSourceFunc adapts a plain function to RateSource.
type RateSourceFunc func() RateCode

// RateCode implements RateSource.
func (f RateSourceFunc) RateCode() RateCode { return f() }

// RateStatus is surfaced to callers blocked on a minimum rate.
type RateStatus int

const (
	RateWaiting RateStatus = iota // still below the threshold
	RateResumed                   // threshold satisfied after a wait
)

func (s RateStatus) String() string {
	if s == RateResumed {
		return "Beam rate at allowed value"
	}
	return "Waiting for beam rate to be at least the required rate..."
}

// RateGate blocks callers until the facility rate is high enough to sample.
type RateGate interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
	ConnectRateSource(RateSource)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	// Observe records a pushed rate code.
	Observe(code RateCode)
	CurrentRate() RateCode
	// WaitForMinimumRate suspends until the rate is at least thresholdHz, the
	// gate is aborted, or ctx ends. The returned code may not satisfy the
	// threshold; callers must check it.
	WaitForMinimumRate(ctx context.Context, thresholdHz float64) RateCode
	Abort()
	Resume()
	Aborted() bool
}
