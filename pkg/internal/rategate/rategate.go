// Package rategate tracks the facility pulse rate and lets callers block
// until it reaches a minimum. Waiting is cooperative: waiters sleep on a
// ticker between polls and return as soon as the gate is aborted.
package rategate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

const (
	DefaultPollInterval   = 20 * time.Millisecond
	DefaultStatusInterval = time.Second
)

// RateGate implements types.RateGate.
type RateGate struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	code   atomic.Int32
	source types.RateSource
	srcMu  sync.Mutex

	aborted atomic.Bool
	wakeMu  sync.Mutex
	wake    chan struct{}

	pollInterval   time.Duration
	statusInterval time.Duration

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewRateGate creates a gate with an undefined rate.
func NewRateGate(options ...types.Option[types.RateGate]) types.RateGate {
	g := &RateGate{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "RATE_GATE",
		},
		wake:           make(chan struct{}),
		pollInterval:   DefaultPollInterval,
		statusInterval: DefaultStatusInterval,
	}

	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}
