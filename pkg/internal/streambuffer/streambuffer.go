// Package streambuffer holds the fixed-capacity rolling history of one device.
//
// A buffer is seeded once by a history snapshot and then advanced by single
// value updates. Skipped updates are represented by explicit missing markers
// (NaN) so the number of samples always tracks wall-clock time at the
// acquisition rate.
//
// A StreamBuffer is not safe for concurrent use. Hosts must deliver updates
// for one device serially and in timestamp order.
package streambuffer

import (
	"math"
	"time"

	"github.com/gammazero/deque"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// StreamBuffer is the rolling window for one device slot.
type StreamBuffer struct {
	capacity int
	values   deque.Deque[float64]
	last     time.Time
	seeded   bool
}

// New returns an empty buffer. capacity <= 0 selects types.DefaultCapacity.
func New(capacity int) *StreamBuffer {
	if capacity <= 0 {
		capacity = types.DefaultCapacity
	}
	b := &StreamBuffer{capacity: capacity}
	b.values.Grow(capacity)
	return b
}

// Capacity returns the fixed window size.
func (b *StreamBuffer) Capacity() int { return b.capacity }

// Len returns the number of samples held, markers included.
func (b *StreamBuffer) Len() int { return b.values.Len() }

// Seeded reports whether data has arrived since the last reset.
func (b *StreamBuffer) Seeded() bool { return b.seeded }

// LastUpdate returns the timestamp of the last applied event. ok is false
// exactly when the buffer has not been seeded since the last reset.
func (b *StreamBuffer) LastUpdate() (ts time.Time, ok bool) {
	return b.last, b.seeded
}

// Reset drops all samples and the last update time.
func (b *StreamBuffer) Reset() {
	b.values.Clear()
	b.last = time.Time{}
	b.seeded = false
}

// ApplyHistorySnapshot replaces the contents with values. Input longer than
// the capacity keeps its most recent samples; shorter input is front-padded
// with missing markers so the buffer is full afterwards.
func (b *StreamBuffer) ApplyHistorySnapshot(values []float64, ts time.Time) {
	b.values.Clear()
	if len(values) > b.capacity {
		values = values[len(values)-b.capacity:]
	}
	for i := len(values); i < b.capacity; i++ {
		b.values.PushBack(math.NaN())
	}
	for _, v := range values {
		b.values.PushBack(v)
	}
	b.last = ts
	b.seeded = true
}

// ApplyIncrementalUpdate advances the buffer by the number of sample periods
// elapsed since the last update at rateHz. The value lands in the newest
// position and every skipped period before it becomes a missing marker.
// Unseeded buffers, unusable rates and non-advancing timestamps leave the
// buffer untouched.
func (b *StreamBuffer) ApplyIncrementalUpdate(value float64, ts time.Time, rateHz float64) types.UpdateResult {
	switch {
	case !b.seeded:
		return types.UpdateResult{Reason: types.UpdateUnseeded}
	case ts.IsZero():
		return types.UpdateResult{Reason: types.UpdateInvalidTime}
	case !(rateHz > 0) || math.IsInf(rateHz, 0):
		return types.UpdateResult{Reason: types.UpdateNoRate}
	}

	elapsed := ElapsedPoints(b.last, ts, rateHz)
	if elapsed <= 0 {
		return types.UpdateResult{ElapsedPoints: elapsed, Reason: types.UpdateStaleOrDupe}
	}

	markers := elapsed - 1
	if markers > b.capacity-1 {
		markers = b.capacity - 1
	}
	for i := 0; i < markers; i++ {
		b.values.PushBack(math.NaN())
	}
	b.values.PushBack(value)
	for b.values.Len() > b.capacity {
		b.values.PopFront()
	}
	b.last = ts

	return types.UpdateResult{
		Applied:         true,
		ElapsedPoints:   elapsed,
		MissingInserted: markers,
		Reason:          types.UpdateApplied,
	}
}

// ElapsedPoints is the number of sample periods between from and to at
// rateHz, rounded half away from zero.
func ElapsedPoints(from, to time.Time, rateHz float64) int {
	n := math.Round(to.Sub(from).Seconds() * rateHz)
	if math.IsNaN(n) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// Values returns a copy of the samples, oldest first.
func (b *StreamBuffer) Values() []float64 {
	out := make([]float64, b.values.Len())
	for i := range out {
		out[i] = b.values.At(i)
	}
	return out
}

// Window returns a copy of the most recent n samples (all of them when n <= 0
// or n exceeds the length).
func (b *StreamBuffer) Window(n int) []float64 {
	size := b.values.Len()
	if n <= 0 || n > size {
		n = size
	}
	out := make([]float64, n)
	offset := size - n
	for i := range out {
		out[i] = b.values.At(offset + i)
	}
	return out
}

// View returns a read-only copy suitable for synchronization.
func (b *StreamBuffer) View() types.BufferView {
	return types.BufferView{
		Values:     b.Values(),
		LastUpdate: b.last,
		Capacity:   b.capacity,
	}
}
