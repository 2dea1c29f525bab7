package synchronizer

import (
	"errors"
	"testing"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ramp(n int, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + float64(i)
	}
	return out
}

func view(values []float64, ts time.Time) types.BufferView {
	return types.BufferView{Values: values, LastUpdate: ts, Capacity: len(values)}
}

func TestIndices(t *testing.T) {
	cases := []struct {
		bad, sign, start, end int
	}{
		{0, 1, 0, 10},
		{3, 1, 3, 10},
		{3, -1, 0, 7},
		{-4, 1, 0, 6},
		{-4, -1, 4, 10},
		{15, 1, 10, 10},
		{15, -1, 0, 0},
		{-15, 1, 0, 0},
		{-15, -1, 10, 10},
	}
	for _, c := range cases {
		start, end := Indices(c.bad, 10, c.sign)
		if start != c.start || end != c.end {
			t.Errorf("Indices(%d, 10, %d) = (%d, %d), want (%d, %d)", c.bad, c.sign, start, end, c.start, c.end)
		}
	}
}

func TestSynchronizeBStartedLater(t *testing.T) {
	const rate = 10.0
	a := view(ramp(10, 0), t0)
	b := view(ramp(10, 100), t0.Add(300*time.Millisecond))

	pair, err := Synchronize(a, b, rate, 0)
	if err != nil {
		t.Fatalf("Synchronize: %v", err)
	}
	if pair.BadShots != 3 || pair.Len() != 7 || len(pair.B) != 7 {
		t.Fatalf("pair = %+v", pair)
	}
	if pair.A[0] != 3 || pair.A[6] != 9 || pair.B[0] != 100 || pair.B[6] != 106 {
		t.Fatalf("A = %v, B = %v", pair.A, pair.B)
	}
}

func TestSynchronizeAStartedLater(t *testing.T) {
	a := view(ramp(10, 0), t0.Add(200*time.Millisecond))
	b := view(ramp(10, 100), t0)

	pair, err := Synchronize(a, b, 10, 0)
	if err != nil {
		t.Fatalf("Synchronize: %v", err)
	}
	if pair.BadShots != -2 || pair.Len() != 8 {
		t.Fatalf("pair = %+v", pair)
	}
	if pair.A[0] != 0 || pair.A[7] != 7 || pair.B[0] != 102 || pair.B[7] != 109 {
		t.Fatalf("A = %v, B = %v", pair.A, pair.B)
	}
}

func TestSynchronizeEqualLengthForAllOffsets(t *testing.T) {
	const capacity = 40
	const rate = 120.0
	for bad := -capacity; bad <= capacity; bad++ {
		a := view(ramp(capacity, 0), t0)
		b := view(ramp(capacity, 0), t0.Add(time.Duration(float64(bad)/rate*float64(time.Second))))

		pair, err := Synchronize(a, b, rate, 0)
		if err != nil {
			t.Fatalf("bad=%d: %v", bad, err)
		}
		want := capacity - abs(bad)
		if len(pair.A) != want || len(pair.B) != want {
			t.Fatalf("bad=%d: len A=%d B=%d, want %d", bad, len(pair.A), len(pair.B), want)
		}
	}
}

func TestSynchronizeDisjointStreams(t *testing.T) {
	a := view(ramp(10, 0), t0)
	b := view(ramp(10, 0), t0.Add(time.Hour))

	pair, err := Synchronize(a, b, 10, 0)
	if err != nil {
		t.Fatalf("Synchronize: %v", err)
	}
	if len(pair.A) != 0 || len(pair.B) != 0 {
		t.Fatalf("expected empty pair, got %+v", pair)
	}
}

func TestSynchronizeNumPointsKeepsMostRecent(t *testing.T) {
	const capacity = 2800
	a := view(ramp(capacity, 0), t0)
	b := view(ramp(capacity, 0), t0)

	for _, n := range []int{1, 120, capacity, capacity + 5} {
		pair, err := Synchronize(a, b, 120, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := min(n, capacity)
		if pair.Len() != want || len(pair.B) != want {
			t.Fatalf("n=%d: len = %d/%d, want %d", n, len(pair.A), len(pair.B), want)
		}
		if pair.A[want-1] != capacity-1 {
			t.Fatalf("n=%d: newest sample = %v, want %d", n, pair.A[want-1], capacity-1)
		}
	}
}

func TestSynchronizeErrors(t *testing.T) {
	a := view(ramp(4, 0), t0)
	b := view(ramp(4, 0), t0)

	for _, rate := range []float64{0, -10} {
		if _, err := Synchronize(a, b, rate, 0); !errors.Is(err, ErrRateUnavailable) {
			t.Errorf("rate %v: err = %v", rate, err)
		}
	}
	if _, err := Synchronize(a, types.BufferView{Capacity: 4}, 10, 0); !errors.Is(err, ErrNotSeeded) {
		t.Errorf("unseeded: err = %v", err)
	}
}

func TestSynchronizeDoesNotAliasInputs(t *testing.T) {
	values := ramp(5, 0)
	pair, err := Synchronize(view(values, t0), view(ramp(5, 0), t0), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	pair.A[0] = -1
	if values[0] != 0 {
		t.Fatal("pair must not share storage with the buffer view")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
