package filterchain

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

var nan = math.NaN()

func pairOf(a, b []float64) types.SynchronizedPair {
	return types.SynchronizedPair{A: a, B: b}
}

func TestAcceptAllIsIdentity(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}
	got := FilterPair(pairOf(a, b), AcceptAll(), AcceptAll())
	if !reflect.DeepEqual(got.A, a) || !reflect.DeepEqual(got.B, b) {
		t.Fatalf("got %v / %v", got.A, got.B)
	}

	x, y := Chain{Rules: []Rule{{Stage: Stage{Kind: "unknown"}, Slots: []types.Slot{types.SlotA}}}}.ApplySeries(a, b)
	if !reflect.DeepEqual(x, a) || !reflect.DeepEqual(y, b) {
		t.Fatalf("series got %v / %v", x, y)
	}
}

func TestFilterPairDropsUnionOfRejections(t *testing.T) {
	a := []float64{1, nan, 3, 4, 5}
	b := []float64{10, 20, 30, nan, 50}

	got := FilterPair(pairOf(a, b), Finite(), Finite())
	if !reflect.DeepEqual(got.A, []float64{1, 3, 5}) || !reflect.DeepEqual(got.B, []float64{10, 30, 50}) {
		t.Fatalf("got %v / %v", got.A, got.B)
	}
}

func TestFilterPairDoesNotMutateInput(t *testing.T) {
	a := []float64{1, nan, 3}
	b := []float64{4, 5, 6}
	FilterPair(pairOf(a, b), Finite(), nil)
	if !math.IsNaN(a[1]) || len(a) != 3 {
		t.Fatal("input mutated")
	}
}

func TestPredicates(t *testing.T) {
	if Finite()(math.Inf(1)) || Finite()(nan) || !Finite()(0) {
		t.Error("Finite")
	}
	if !Below(10)(9.99) || Below(10)(10) {
		t.Error("Below must be strict")
	}
	within := WithinDeviation(5, 2, 1.5)
	if !within(7.9) || within(8) || within(2) {
		t.Error("WithinDeviation must be strict on both sides")
	}
}

func TestChainPropertiesOnRandomPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	chain := NewChain([types.SlotCount]string{"A:DEV", PeakCurrentDevice}, Options{
		DeviceRules:     DefaultDeviceRules(),
		FilterByStdDevs: true,
		StdDevsToKeep:   2,
	})

	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(300)
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = rng.NormFloat64()
			b[i] = rng.Float64() * 20000
			if rng.Intn(10) == 0 {
				a[i] = nan
			}
			if rng.Intn(10) == 0 {
				b[i] = nan
			}
		}

		got := chain.Apply(pairOf(a, b))
		if len(got.A) != len(got.B) {
			t.Fatalf("trial %d: len A=%d B=%d", trial, len(got.A), len(got.B))
		}
		for i := range got.A {
			if math.IsNaN(got.A[i]) || math.IsNaN(got.B[i]) {
				t.Fatalf("trial %d: missing marker survived at %d", trial, i)
			}
			if got.B[i] >= PeakCurrentLimit {
				t.Fatalf("trial %d: peak current %v survived", trial, got.B[i])
			}
		}
	}
}

func TestDeviceRuleOnlyOnArmedSlot(t *testing.T) {
	a := []float64{20000, 1, 2}
	b := []float64{3, 4, 5}

	chain := NewChain([types.SlotCount]string{"OTHER", PeakCurrentDevice}, Options{DeviceRules: DefaultDeviceRules()})
	got := chain.Apply(pairOf(a, b))
	if len(got.A) != 3 {
		t.Fatalf("limit applied to the wrong slot: %v", got.A)
	}

	chain = NewChain([types.SlotCount]string{PeakCurrentDevice, "OTHER"}, Options{DeviceRules: DefaultDeviceRules()})
	got = chain.Apply(pairOf(a, b))
	if !reflect.DeepEqual(got.A, []float64{1, 2}) || !reflect.DeepEqual(got.B, []float64{4, 5}) {
		t.Fatalf("got %v / %v", got.A, got.B)
	}
}

func TestDeviationStageUsesFilteredData(t *testing.T) {
	// mean 20, population std 40 over the finite values
	y := []float64{0, 0, nan, 0, 0, 100}
	x := []float64{0, 1, 2, 3, 4, 5}

	chain := NewChain([types.SlotCount]string{"DEV", ""}, Options{FilterByStdDevs: true, StdDevsToKeep: 1})
	fx, fy := chain.ApplySeries(x, y)
	if !reflect.DeepEqual(fx, []float64{0, 1, 3, 4}) || !reflect.DeepEqual(fy, []float64{0, 0, 0, 0}) {
		t.Fatalf("got %v / %v", fx, fy)
	}
}

func TestApplySeriesPeakLimit(t *testing.T) {
	chain := NewChain([types.SlotCount]string{PeakCurrentDevice, ""}, Options{DeviceRules: DefaultDeviceRules()})
	fx, fy := chain.ApplySeries([]float64{0, 1, 2, 3}, []float64{100, 13000, nan, 200})
	if !reflect.DeepEqual(fx, []float64{0, 3}) || !reflect.DeepEqual(fy, []float64{100, 200}) {
		t.Fatalf("got %v / %v", fx, fy)
	}
}

func TestDeviationOnEmptyDataRejects(t *testing.T) {
	p := Stage{Kind: StageDeviation, K: 3}.Predicate([]float64{nan})
	if p(0) {
		t.Fatal("expected rejection without finite reference values")
	}
}

func TestDescribe(t *testing.T) {
	chain := NewChain([types.SlotCount]string{PeakCurrentDevice, "B"}, Options{
		DeviceRules: DefaultDeviceRules(), FilterByStdDevs: true, StdDevsToKeep: 3,
	})
	want := []string{"finite[A B]", "below(12000)[A]", "deviation(3)[A]", "deviation(3)[B]"}
	if got := chain.Describe(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Describe = %v, want %v", got, want)
	}
}

func TestFilterSeriesLockstep(t *testing.T) {
	out := FilterSeries([]float64{1, nan, 3}, Finite(), []float64{7, 8, 9}, []float64{1, nan, 3})
	if !reflect.DeepEqual(out[0], []float64{7, 9}) || !reflect.DeepEqual(out[1], []float64{1, 3}) {
		t.Fatalf("got %v", out)
	}
}
