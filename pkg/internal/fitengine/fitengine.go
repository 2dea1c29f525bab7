// Package fitengine fits lines and polynomials to the filtered series of a
// refresh and summarizes them for display.
package fitengine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MaxOrder is the highest polynomial order accepted by Polynomial.
const MaxOrder = 10

const machineEpsilon = 0x1p-52

var (
	ErrLengthMismatch = errors.New("fitengine: series lengths differ")
	ErrTooFewPoints   = errors.New("fitengine: not enough finite points")
	ErrZeroVariance   = errors.New("fitengine: independent series has zero variance")
	ErrInvalidOrder   = errors.New("fitengine: polynomial order out of range")
	ErrIllConditioned = errors.New("fitengine: ill-conditioned least squares system")
	ErrNoVertex       = errors.New("fitengine: leading coefficient is zero")
)

// Linear fits y = m*x + b by ordinary least squares over the index pairs
// where both values are finite.
func Linear(xs, ys []float64) types.FitResult {
	res := types.FitResult{Kind: types.FitLinear, Order: 1}

	x, y, err := finitePairs(xs, ys)
	if err != nil {
		return unavailable(res, err)
	}
	if len(x) < 2 {
		return unavailable(res, fmt.Errorf("%w: have %d, need 2", ErrTooFewPoints, len(x)))
	}
	if floats.Min(x) == floats.Max(x) {
		return unavailable(res, ErrZeroVariance)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return failed(res, ErrIllConditioned)
	}

	res.Coefficients = []float64{slope, intercept}
	res.Summary = slopeSummary(slope)
	res.Status = types.FitOK
	return res
}

// Polynomial fits a polynomial of the given order. Coefficients are returned
// highest degree first. Order 2 also reports the vertex x = -b/(2a).
func Polynomial(xs, ys []float64, order int) types.FitResult {
	res := types.FitResult{Kind: types.FitPolynomial, Order: order}

	if order < 1 || order > MaxOrder {
		return unavailable(res, fmt.Errorf("%w: %d", ErrInvalidOrder, order))
	}
	x, y, err := finitePairs(xs, ys)
	if err != nil {
		return unavailable(res, err)
	}
	if len(x) < order+1 {
		return unavailable(res, fmt.Errorf("%w: have %d, need %d", ErrTooFewPoints, len(x), order+1))
	}

	coeffs, err := polyfit(x, y, order)
	if err != nil {
		return failed(res, err)
	}
	res.Coefficients = coeffs

	switch order {
	case 1:
		res.Summary = slopeSummary(coeffs[0])
	case 2:
		v, err := Vertex(coeffs)
		if err != nil {
			return failed(res, err)
		}
		res.Vertex, res.HasVertex = v, true
		res.Summary = fmt.Sprintf("Peak: %.2f", v)
	case 3:
		res.Summary = fmt.Sprintf("%.2ex^3+%.2ex^2+%.2ex+%.2e", coeffs[0], coeffs[1], coeffs[2], coeffs[3])
	}
	res.Status = types.FitOK
	return res
}

// Vertex returns -b/(2a) for quadratic coefficients [a, b, c].
func Vertex(coeffs []float64) (float64, error) {
	if len(coeffs) != 3 {
		return 0, fmt.Errorf("%w: vertex needs 3 coefficients, got %d", ErrInvalidOrder, len(coeffs))
	}
	if coeffs[0] == 0 {
		return 0, ErrNoVertex
	}
	v := -coeffs[1] / (2 * coeffs[0])
	if !isFinite(v) {
		return 0, ErrNoVertex
	}
	return v, nil
}

// Curve evaluates coeffs (highest degree first) on a sorted copy of xs.
func Curve(coeffs, xs []float64) (sortedX, fitted []float64) {
	sortedX = append([]float64(nil), xs...)
	sort.Float64s(sortedX)
	fitted = make([]float64, len(sortedX))
	for i, x := range sortedX {
		fitted[i] = Eval(coeffs, x)
	}
	return sortedX, fitted
}

// Eval evaluates a polynomial by Horner's rule.
func Eval(coeffs []float64, x float64) float64 {
	var acc float64
	for _, c := range coeffs {
		acc = acc*x + c
	}
	return acc
}

// polyfit solves the Vandermonde least squares problem by SVD. Columns are
// scaled to unit norm first and any singular value below n*eps relative to
// the largest marks the system as ill-conditioned.
func polyfit(x, y []float64, order int) ([]float64, error) {
	n, cols := len(x), order+1

	a := mat.NewDense(n, cols, nil)
	for i, xi := range x {
		p := 1.0
		for j := cols - 1; j >= 0; j-- {
			a.Set(i, j, p)
			p *= xi
		}
	}

	scale := make([]float64, cols)
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, a)
		scale[j] = floats.Norm(col, 2)
		if scale[j] == 0 || !isFinite(scale[j]) {
			return nil, fmt.Errorf("%w: column %d has norm %v", ErrIllConditioned, j, scale[j])
		}
		floats.Scale(1/scale[j], col)
		a.SetCol(j, col)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, fmt.Errorf("%w: factorization failed", ErrIllConditioned)
	}
	if rank := svd.Rank(float64(n) * machineEpsilon); rank < cols {
		return nil, fmt.Errorf("%w: rank %d < %d", ErrIllConditioned, rank, cols)
	}

	var c mat.VecDense
	svd.SolveVecTo(&c, mat.NewVecDense(n, append([]float64(nil), y...)), cols)

	out := make([]float64, cols)
	for j := range out {
		out[j] = c.AtVec(j) / scale[j]
		if !isFinite(out[j]) {
			return nil, fmt.Errorf("%w: coefficient %d is %v", ErrIllConditioned, j, out[j])
		}
	}
	return out, nil
}

func finitePairs(xs, ys []float64) (x, y []float64, err error) {
	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(xs), len(ys))
	}
	x = make([]float64, 0, len(xs))
	y = make([]float64, 0, len(ys))
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			x = append(x, xs[i])
			y = append(y, ys[i])
		}
	}
	return x, y, nil
}

func slopeSummary(m float64) string {
	return fmt.Sprintf("Slope: %.2e", m)
}

func unavailable(res types.FitResult, err error) types.FitResult {
	res.Status = types.FitUnavailable
	res.Summary = res.Status.String()
	res.Err = err
	return res
}

func failed(res types.FitResult, err error) types.FitResult {
	res.Status = types.FitFailed
	res.Summary = res.Status.String()
	res.Coefficients = nil
	res.Err = err
	return res
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
