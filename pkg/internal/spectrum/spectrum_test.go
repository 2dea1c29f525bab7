package spectrum

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestEmptyWindow(t *testing.T) {
	s, err := Compute(nil, 10)
	if err != nil || s.Len() != 0 {
		t.Fatalf("got %+v, %v", s, err)
	}
	s, err = Compute([]float64{math.NaN(), math.NaN()}, 10)
	if err != nil || s.Len() != 0 {
		t.Fatalf("all missing: got %+v, %v", s, err)
	}
}

func TestRateUnavailable(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Compute([]float64{1, 2}, r); !errors.Is(err, ErrRateUnavailable) {
			t.Errorf("rate %v: err %v", r, err)
		}
	}
}

func TestConstantInputIsFlat(t *testing.T) {
	window := make([]float64, 120)
	for i := range window {
		window[i] = 4.2
	}
	s, err := Compute(window, 120)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range s.Magnitudes {
		if m > 1e-12 {
			t.Fatalf("bin %d magnitude %v", i, m)
		}
	}
}

func TestBinsSortedAndNonNegative(t *testing.T) {
	window := make([]float64, 101)
	for i := range window {
		window[i] = math.Sin(2 * math.Pi * 5 * float64(i) / 60)
	}
	window[0], window[50], window[100] = math.NaN(), math.NaN(), math.NaN()

	s, err := Compute(window, 60)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(s.Magnitudes) || s.Len() == 0 {
		t.Fatalf("bins %d / %d", s.Len(), len(s.Magnitudes))
	}
	if s.Frequencies[0] != 0 {
		t.Fatalf("first bin %v", s.Frequencies[0])
	}
	if !sort.Float64sAreSorted(s.Frequencies) {
		t.Fatal("frequencies not ascending")
	}
	for i := range s.Magnitudes {
		if math.IsNaN(s.Magnitudes[i]) || s.Frequencies[i] < 0 {
			t.Fatalf("bin %d: %v Hz %v", i, s.Frequencies[i], s.Magnitudes[i])
		}
	}

	peak := 0
	for i, m := range s.Magnitudes {
		if m > s.Magnitudes[peak] {
			peak = i
		}
	}
	if math.Abs(s.Frequencies[peak]-5) > 0.3 {
		t.Fatalf("peak at %v Hz", s.Frequencies[peak])
	}
}

func TestInterpolate(t *testing.T) {
	nan := math.NaN()
	got, ok := Interpolate([]float64{nan, 1, nan, nan, 4, nan})
	want := []float64{1, 1, 2, 3, 4, 4}
	if !ok {
		t.Fatal("expected ok")
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFFTFreq(t *testing.T) {
	tests := []struct {
		n    int
		d    float64
		want []float64
	}{
		{4, 0.25, []float64{0, 1, -2, -1}},
		{5, 1, []float64{0, 0.2, 0.4, -0.4, -0.2}},
	}
	for _, tc := range tests {
		got := FFTFreq(tc.n, tc.d)
		for i := range tc.want {
			if math.Abs(got[i]-tc.want[i]) > 1e-12 {
				t.Fatalf("n=%d: got %v, want %v", tc.n, got, tc.want)
			}
		}
	}
}
