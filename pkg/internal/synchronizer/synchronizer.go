// Package synchronizer aligns two independently started stream buffers onto
// their common time window. Both buffers are sampled at the same acquisition
// rate, so the overlap follows from the start-time delta alone.
package synchronizer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/streambuffer"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

var (
	ErrRateUnavailable = errors.New("synchronizer: acquisition rate unavailable")
	ErrNotSeeded       = errors.New("synchronizer: buffer has no data")
)

// BadShots is the signed number of sample periods by which b started after a.
func BadShots(a, b time.Time, rateHz float64) int {
	return streambuffer.ElapsedPoints(a, b, rateHz)
}

// Indices returns the half-open slice bounds used for one side of the pair.
// sign is +1 for the A side and -1 for the B side. Both bounds are clamped
// to [0, capacity] and end is never below start.
func Indices(badShots, capacity, sign int) (start, end int) {
	shift := sign * badShots
	start = utils.Clamp(shift, 0, capacity)
	end = utils.Clamp(capacity+shift, 0, capacity)
	if end < start {
		end = start
	}
	return start, end
}

// Synchronize trims a and b to their overlapping window and then keeps only the
// most recent numPoints samples of each (numPoints <= 0 keeps everything).
// The returned series always have equal length.
func Synchronize(a, b types.BufferView, rateHz float64, numPoints int) (types.SynchronizedPair, error) {
	if !(rateHz > 0) || math.IsInf(rateHz, 0) {
		return types.SynchronizedPair{}, fmt.Errorf("%w: %v Hz", ErrRateUnavailable, rateHz)
	}
	if a.LastUpdate.IsZero() || b.LastUpdate.IsZero() {
		return types.SynchronizedPair{}, ErrNotSeeded
	}

	capacity := a.Capacity
	if b.Capacity < capacity {
		capacity = b.Capacity
	}
	if capacity <= 0 {
		capacity = min(len(a.Values), len(b.Values))
	}

	bad := BadShots(a.LastUpdate, b.LastUpdate, rateHz)
	startA, endA := Indices(bad, capacity, 1)
	startB, endB := Indices(bad, capacity, -1)

	seriesA := slice(a.Values, startA, endA)
	seriesB := slice(b.Values, startB, endB)

	// Short inputs can only shrink the window; keep the newest samples of
	// the longer side.
	if n := min(len(seriesA), len(seriesB)); len(seriesA) != len(seriesB) {
		seriesA = seriesA[len(seriesA)-n:]
		seriesB = seriesB[len(seriesB)-n:]
	}

	if numPoints > 0 && numPoints < len(seriesA) {
		seriesA = seriesA[len(seriesA)-numPoints:]
		seriesB = seriesB[len(seriesB)-numPoints:]
	}

	return types.SynchronizedPair{
		A:        append([]float64(nil), seriesA...),
		B:        append([]float64(nil), seriesB...),
		BadShots: bad,
	}, nil
}

func slice(values []float64, start, end int) []float64 {
	end = min(end, len(values))
	start = min(start, end)
	return values[start:end]
}
