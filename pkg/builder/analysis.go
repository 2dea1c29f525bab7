package builder

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/fitengine"
	"github.com/joeydtaylor/rtbsa/pkg/internal/spectrum"
	"github.com/joeydtaylor/rtbsa/pkg/internal/streambuffer"
	"github.com/joeydtaylor/rtbsa/pkg/internal/synchronizer"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// The analysis stages below are pure functions; sessions use them on every
// refresh and they can be applied directly to recorded data.

type StreamBuffer = streambuffer.StreamBuffer

type FilterChain = filterchain.Chain

type FilterOptions = filterchain.Options

type BufferView = types.BufferView

// NewStreamBuffer returns an empty rolling buffer holding capacity samples.
func NewStreamBuffer(capacity int) *streambuffer.StreamBuffer { return streambuffer.New(capacity) }

// Synchronize aligns two buffers on their last-update times at rateHz and
// keeps the most recent numPoints shared samples.
func Synchronize(a, b types.BufferView, rateHz float64, numPoints int) (SynchronizedPair, error) {
	return synchronizer.Synchronize(a, b, rateHz, numPoints)
}

// BadShots is the signed sample offset between two last-update times.
func BadShots(a, b time.Time, rateHz float64) int { return synchronizer.BadShots(a, b, rateHz) }

// NewFilterChain builds the standard chain for the given device slots.
func NewFilterChain(devices [types.SlotCount]string, opts FilterOptions) FilterChain {
	return filterchain.NewChain(devices, opts)
}

func LinearFit(xs, ys []float64) FitResult { return fitengine.Linear(xs, ys) }

// PolynomialFit fits a polynomial of the given order (1 to 10).
func PolynomialFit(xs, ys []float64, order int) FitResult {
	return fitengine.Polynomial(xs, ys, order)
}

// FitCurve evaluates coefficients over xs sorted ascending, for plotting.
func FitCurve(coeffs, xs []float64) (sortedX, fitted []float64) { return fitengine.Curve(coeffs, xs) }

func Summarize(ys []float64) Statistics { return fitengine.Summarize(ys) }

func SummarizePair(xs, ys []float64) Statistics { return fitengine.SummarizePair(xs, ys) }

// ComputeSpectrum returns the one-sided magnitude spectrum of window sampled
// at rateHz.
func ComputeSpectrum(window []float64, rateHz float64) (Spectrum, error) {
	return spectrum.Compute(window, rateHz)
}
