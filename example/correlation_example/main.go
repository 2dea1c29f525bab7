package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/builder"
)

const (
	bpmX   = "BPMS:LI24:801:X"
	bpmY   = "BPMS:LI24:901:X"
	rateHz = 120.0
)

// beamSim plays two correlated orbit readings at 120Hz, starting with a
// history snapshot for each device.
type beamSim struct{}

func (beamSim) GetComponentMetadata() builder.ComponentMetadata {
	return builder.ComponentMetadata{ID: "sim", Type: "SIMULATOR", Name: "beam"}
}

func (beamSim) Serve(ctx context.Context, submit builder.SubmitFunc) error {
	rng := rand.New(rand.NewSource(1))
	t0 := time.Now()

	history := make([]float64, 240)
	for i := range history {
		history[i] = rng.NormFloat64()
	}
	_ = submit(ctx, builder.Event{Kind: builder.EventRateChange, Rate: builder.Rate120Hz})
	for _, dev := range []string{bpmX, bpmY} {
		_ = submit(ctx, builder.Event{
			Kind:     builder.EventHistorySnapshot,
			Device:   dev,
			Snapshot: &builder.HistorySnapshot{Values: history, Timestamp: t0},
		})
	}

	ticker := time.NewTicker(time.Second / rateHz)
	defer ticker.Stop()
	for k := 1; ; k++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		ts := t0.Add(time.Duration(float64(k) / rateHz * float64(time.Second)))
		x := math.Sin(float64(k)/40) + 0.1*rng.NormFloat64()
		y := 2.5*x + 0.3 + 0.05*rng.NormFloat64()
		if k%97 == 0 {
			y = math.NaN()
		}
		_ = submit(ctx, builder.Event{Kind: builder.EventValueUpdate, Device: bpmX, Update: &builder.ValueUpdate{Value: x, Timestamp: ts}})
		_ = submit(ctx, builder.Event{Kind: builder.EventValueUpdate, Device: bpmY, Update: &builder.ValueUpdate{Value: y, Timestamp: ts}})
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	meter := builder.NewMeter(builder.MeterWithHostStats(false))
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithOnRateWaitingFunc(func(c builder.ComponentMetadata, code builder.RateCode, hz float64) {
			fmt.Println(builder.RateWaitingMessage(hz))
		}),
		builder.SensorWithOnFitFailureFunc(func(c builder.ComponentMetadata, res builder.FitResult) {
			fmt.Printf("fit failed: %s\n", res.Summary)
		}),
	)

	session := builder.NewSession(
		builder.SessionWithMode(builder.ModeCorrelation),
		builder.SessionWithNumPoints(600),
		builder.SessionWithStdDevFilter(true, 3),
		builder.SessionWithFit(builder.FitLinear, 1),
		builder.SessionWithLogger(logger),
		builder.SessionWithSensor(sensor),
	)
	if err := session.Arm(bpmX, bpmY); err != nil {
		fmt.Printf("arm: %v\n", err)
		return
	}

	printer := builder.FramePublisherFunc(func(_ context.Context, f builder.Frame) error {
		if f.Sequence%20 != 0 {
			return nil
		}
		fmt.Printf("#%d %s  n=%d  r=%.3f  %s  [%s]\n",
			f.Sequence, f.Title, len(f.X), f.Stats.Correlation, f.Fit.Summary, f.Status)
		return nil
	})

	runner := builder.NewRunner(session,
		builder.RunnerWithSource(beamSim{}),
		builder.RunnerWithPublisher(printer),
		builder.RunnerWithRefreshInterval(50*time.Millisecond),
	)
	if err := runner.Start(ctx); err != nil {
		fmt.Printf("start: %v\n", err)
		return
	}
	<-ctx.Done()
	_ = runner.Stop()

	fmt.Println("Summary:")
	for _, name := range []builder.MetricName{
		builder.MetricRefreshCount,
		builder.MetricUpdateAppliedCount,
		builder.MetricUpdateDroppedCount,
		builder.MetricFitFailureCount,
	} {
		fmt.Printf("  %-24s %d\n", name, meter.GetMetricCount(string(name)))
	}
}
