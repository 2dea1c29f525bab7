// Package spectrum computes a single-sided magnitude spectrum of a window that
// may contain missing markers.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PadFactor is the ratio of transform length to window length.
const PadFactor = 3

var ErrRateUnavailable = errors.New("spectrum: acquisition rate unavailable")

// Compute interpolates missing markers, removes the mean, zero-pads the
// window to PadFactor times its length and returns magnitude/N at every
// non-negative frequency in ascending order. An empty window, or one with no
// finite sample, yields an empty spectrum.
func Compute(window []float64, rateHz float64) (types.Spectrum, error) {
	if !(rateHz > 0) || math.IsInf(rateHz, 0) {
		return types.Spectrum{}, fmt.Errorf("%w: %v Hz", ErrRateUnavailable, rateHz)
	}
	if len(window) == 0 {
		return types.Spectrum{}, nil
	}

	data, ok := Interpolate(window)
	if !ok {
		return types.Spectrum{}, nil
	}

	mean := stat.Mean(data, nil)
	n := len(data) * PadFactor
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	coeffs := fft.FFTReal(padded)
	freqs := FFTFreq(n, 1/rateHz)

	type bin struct{ f, m float64 }
	bins := make([]bin, 0, n/2+1)
	for i, f := range freqs {
		if f >= 0 {
			bins = append(bins, bin{f: f, m: cmplx.Abs(coeffs[i]) / float64(n)})
		}
	}
	sort.SliceStable(bins, func(i, j int) bool { return bins[i].f < bins[j].f })

	out := types.Spectrum{
		Frequencies: make([]float64, len(bins)),
		Magnitudes:  make([]float64, len(bins)),
	}
	for i, b := range bins {
		out.Frequencies[i] = b.f
		out.Magnitudes[i] = b.m
	}
	return out, nil
}

// Interpolate returns a copy of xs with every non-finite sample replaced by
// linear interpolation over the sample index. Samples before the first or
// after the last finite value take that value. ok is false when xs has no
// finite sample.
func Interpolate(xs []float64) (out []float64, ok bool) {
	out = append([]float64(nil), xs...)

	prev := -1
	for i, v := range out {
		if utils.IsMissing(v) {
			continue
		}
		switch {
		case prev < 0:
			for j := 0; j < i; j++ {
				out[j] = v
			}
		case i-prev > 1:
			left := out[prev]
			step := (v - left) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = left + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev < 0 {
		return nil, false
	}
	for j := prev + 1; j < len(out); j++ {
		out[j] = out[prev]
	}
	return out, true
}

// FFTFreq returns the sample frequencies of an n-point transform with sample
// spacing d, in the standard order: zero, positive, then negative.
func FFTFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	scale := 1 / (float64(n) * d)
	half := (n-1)/2 + 1
	for i := 0; i < half; i++ {
		out[i] = float64(i) * scale
	}
	for i := half; i < n; i++ {
		out[i] = float64(i-n) * scale
	}
	return out
}
