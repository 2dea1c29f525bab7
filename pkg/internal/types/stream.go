package types

import (
	"context"
	"time"
)

// DefaultCapacity is the rolling window kept per device.
const DefaultCapacity = 2800

// EventKind distinguishes the payloads delivered by the control-system client.
type EventKind string

const (
	EventHistorySnapshot EventKind = "snapshot"
	EventValueUpdate     EventKind = "update"
	EventRateChange      EventKind = "rate"
)

// HistorySnapshot is a full history buffer read for a device.
type HistorySnapshot struct {
	Values    []float64
	Timestamp time.Time
}

// ValueUpdate is a single new reading for a device.
type ValueUpdate struct {
	Value     float64
	Timestamp time.Time
}

// Event is the envelope routed into a session. Exactly one payload is set,
// matching Kind. Device names the PV the event belongs to; Slot is used when
// the source already knows the slot.
type Event struct {
	Kind     EventKind
	Device   string
	Slot     *Slot
	Snapshot *HistorySnapshot
	Update   *ValueUpdate
	Rate     RateCode
}

// SubmitFunc receives decoded events from a source.
type SubmitFunc func(ctx context.Context, ev Event) error

// EventSource delivers control-system events until ctx ends. Updates for a
// given device must be delivered serially and in timestamp order.
type EventSource interface {
	GetComponentMetadata() ComponentMetadata
	Serve(ctx context.Context, submit SubmitFunc) error
}

// UpdateReason explains why an incremental update was or was not applied.
type UpdateReason string

const (
	UpdateApplied     UpdateReason = "applied"
	UpdateUnseeded    UpdateReason = "unseeded"
	UpdateNoRate      UpdateReason = "no_rate"
	UpdateStaleOrDupe UpdateReason = "stale_or_duplicate"
	UpdateInvalidTime UpdateReason = "invalid_timestamp"
)

// UpdateResult describes the effect of one incremental update.
type UpdateResult struct {
	Applied         bool
	ElapsedPoints   int
	MissingInserted int
	Reason          UpdateReason
}

// BufferView is a read-only copy of a stream buffer at one instant.
type BufferView struct {
	Values     []float64
	LastUpdate time.Time
	Capacity   int
}
