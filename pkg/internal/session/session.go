// Package session ties the stream buffers, rate gate, synchronizer, filter
// chain, fit and spectrum engines into one acquisition session, and runs it
// against event sources and frame publishers.
package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/rategate"
	"github.com/joeydtaylor/rtbsa/pkg/internal/streambuffer"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

// Status texts shown to the operator.
const (
	StatusInitializing = "Initializing..."
	StatusRunning      = "Running"
	StatusStopped      = "Stopped"
	StatusNoData       = "No Data, Aborting Plotting Algorithm"
)

const DefaultSeedPollInterval = 20 * time.Millisecond

var (
	ErrAborted       = errors.New("session: aborted")
	ErrNoDevice      = errors.New("session: device not selected")
	ErrUnknownDevice = errors.New("session: event for a device that is not armed")
	ErrNotArmed      = errors.New("session: not armed")
)

// Session owns one buffer per slot. HandleEvent, Refresh and Stop are
// serialized by mu, which is what keeps per-slot deliveries ordered.
type Session struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	id string

	mu      sync.Mutex
	armed   bool
	devices [types.SlotCount]string
	buffers [types.SlotCount]*streambuffer.StreamBuffer
	status  string

	gate types.RateGate

	mode            types.Mode
	capacity        int
	numPoints       int
	filterByStdDevs bool
	stdDevsToKeep   float64
	deviceRules     filterchain.DeviceRules
	fitKind         types.FitKind
	fitOrder        int
	minRateHz       float64
	seedPoll        time.Duration

	sequence atomic.Uint64
	built    bool

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewSession builds an unarmed session in time-series mode.
func NewSession(options ...types.Option[*Session]) *Session {
	s := &Session{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SESSION",
		},
		id:            uuid.NewString(),
		status:        StatusStopped,
		mode:          types.ModeTimeSeries,
		capacity:      types.DefaultCapacity,
		numPoints:     types.DefaultCapacity,
		stdDevsToKeep: 3,
		deviceRules:   filterchain.DefaultDeviceRules(),
		fitKind:       types.FitNone,
		fitOrder:      2,
		minRateHz:     1,
		seedPoll:      DefaultSeedPollInterval,
	}

	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.gate == nil {
		s.gate = rategate.NewRateGate()
	}
	s.gate.ConnectLogger(s.snapshotLoggers()...)
	s.gate.ConnectSensor(s.snapshotSensors()...)
	s.built = true
	for i := range s.buffers {
		s.buffers[i] = streambuffer.New(s.capacity)
	}
	return s
}

// ID is the session identifier carried on every frame.
func (s *Session) ID() string { return s.id }

// Gate exposes the rate gate so hosts can push or poll rate codes.
func (s *Session) Gate() types.RateGate { return s.gate }

// Mode returns the analysis mode.
func (s *Session) Mode() types.Mode { return s.mode }

// Devices returns the armed device names by slot.
func (s *Session) Devices() [types.SlotCount]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devices
}

// Status returns the last operator-facing status text.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// activeSlots lists the slots the current mode reads from.
func (s *Session) activeSlots() []types.Slot {
	if s.mode == types.ModeCorrelation {
		return []types.Slot{types.SlotA, types.SlotB}
	}
	return []types.Slot{types.SlotA}
}
