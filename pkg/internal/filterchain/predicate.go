package filterchain

import (
	"math"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

// Predicate decides whether a single sample is kept.
type Predicate func(float64) bool

// Finite keeps samples that are not missing markers.
func Finite() Predicate {
	return func(v float64) bool { return !utils.IsMissing(v) }
}

// Below keeps samples strictly below limit.
func Below(limit float64) Predicate {
	return func(v float64) bool { return v < limit }
}

// WithinDeviation keeps samples with |v-mean| < k*std.
func WithinDeviation(mean, std, k float64) Predicate {
	bound := k * std
	return func(v float64) bool { return math.Abs(v-mean) < bound }
}

// AcceptAll keeps every sample.
func AcceptAll() Predicate {
	return func(float64) bool { return true }
}

// Mask evaluates p over ref. A nil predicate accepts everything.
func Mask(ref []float64, p Predicate) []bool {
	mask := make([]bool, len(ref))
	for i, v := range ref {
		mask[i] = p == nil || p(v)
	}
	return mask
}

// And combines masks of equal length element-wise.
func And(masks ...[]bool) []bool {
	if len(masks) == 0 {
		return nil
	}
	out := append([]bool(nil), masks[0]...)
	for _, m := range masks[1:] {
		for i := range out {
			out[i] = out[i] && i < len(m) && m[i]
		}
	}
	return out
}

// ApplyMask returns the elements of xs whose mask entry is true.
func ApplyMask(xs []float64, mask []bool) []float64 {
	out := make([]float64, 0, len(xs))
	for i, v := range xs {
		if i < len(mask) && mask[i] {
			out = append(out, v)
		}
	}
	return out
}

// FilterPair drops every index rejected by predA on A or by predB on B, so
// both series stay index-aligned. nil predicates accept everything.
func FilterPair(pair types.SynchronizedPair, predA, predB Predicate) types.SynchronizedPair {
	mask := And(Mask(pair.A, predA), Mask(pair.B, predB))
	return types.SynchronizedPair{
		A:        ApplyMask(pair.A, mask),
		B:        ApplyMask(pair.B, mask),
		BadShots: pair.BadShots,
	}
}

// FilterSeries masks against ref and reduces each target in lockstep.
func FilterSeries(ref []float64, p Predicate, targets ...[]float64) [][]float64 {
	mask := Mask(ref, p)
	out := make([][]float64, len(targets))
	for i, t := range targets {
		out[i] = ApplyMask(t, mask)
	}
	return out
}
