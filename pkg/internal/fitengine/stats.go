package fitengine

import (
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the mean of the finite values in xs.
func Mean(xs []float64) (float64, bool) {
	f := utils.Finite(xs)
	if len(f) == 0 {
		return 0, false
	}
	return stat.Mean(f, nil), true
}

// StdDev returns the population standard deviation of the finite values.
func StdDev(xs []float64) (float64, bool) {
	f := utils.Finite(xs)
	if len(f) == 0 {
		return 0, false
	}
	_, std := stat.PopMeanStdDev(f, nil)
	return std, true
}

// Correlation returns the Pearson coefficient over pairs where both values
// are finite. It is undefined with fewer than two pairs or when either side
// is constant.
func Correlation(xs, ys []float64) (float64, bool) {
	x, y, err := finitePairs(xs, ys)
	if err != nil || len(x) < 2 {
		return 0, false
	}
	if floats.Min(x) == floats.Max(x) || floats.Min(y) == floats.Max(y) {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if !isFinite(r) {
		return 0, false
	}
	return r, true
}

// Summarize computes count, mean, population std, min and max over the
// finite values of ys.
func Summarize(ys []float64) types.Statistics {
	f := utils.Finite(ys)
	if len(f) == 0 {
		return types.Statistics{}
	}
	mean, std := stat.PopMeanStdDev(f, nil)
	return types.Statistics{
		Count:  len(f),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(f),
		Max:    floats.Max(f),
	}
}

// SummarizePair is Summarize over ys plus the correlation of xs and ys.
func SummarizePair(xs, ys []float64) types.Statistics {
	s := Summarize(ys)
	s.Correlation, s.HasCorrelation = Correlation(xs, ys)
	return s
}
