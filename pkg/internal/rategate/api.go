package rategate

import (
	"context"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// Observe records a pushed rate code. Out-of-range codes are stored as undefined.
func (g *RateGate) Observe(code types.RateCode) {
	if !code.Valid() {
		g.NotifyLoggers(types.WarnLevel, "rate code out of range",
			"component", g.GetComponentMetadata(), "event", "Observe", "result", "IGNORED", "code", int(code))
		code = types.RateUndefined
	}
	prev := types.RateCode(g.code.Swap(int32(code)))
	if prev != code {
		g.NotifyLoggers(types.DebugLevel, "rate changed",
			"component", g.GetComponentMetadata(), "event", "Observe", "from", prev.String(), "to", code.String())
	}
}

// CurrentRate returns the latest known code, refreshing from the connected
// RateSource when there is one.
func (g *RateGate) CurrentRate() types.RateCode {
	g.srcMu.Lock()
	src := g.source
	g.srcMu.Unlock()

	if src != nil {
		code := src.RateCode()
		if !code.Valid() {
			code = types.RateUndefined
		}
		g.code.Store(int32(code))
		return code
	}
	return types.RateCode(g.code.Load())
}

// WaitForMinimumRate blocks until the rate is at least thresholdHz, the gate
// is aborted, or ctx ends. It never spins: between polls the caller sleeps
// on a ticker. The waiting notice repeats once per status interval, the first
// one after a full interval. The returned code may not satisfy the threshold.
func (g *RateGate) WaitForMinimumRate(ctx context.Context, thresholdHz float64) types.RateCode {
	code := g.CurrentRate()
	if satisfies(code, thresholdHz) || g.Aborted() {
		return code
	}
	if ctx == nil {
		ctx = context.Background()
	}

	wake := g.wakeChan()

	poll := time.NewTicker(g.pollInterval)
	defer poll.Stop()
	status := time.NewTicker(g.statusInterval)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			return g.CurrentRate()
		case <-wake:
			return g.CurrentRate()
		case <-status.C:
			g.notifyWaiting(g.CurrentRate(), thresholdHz)
		case <-poll.C:
			if g.Aborted() {
				return g.CurrentRate()
			}
			code = g.CurrentRate()
			if satisfies(code, thresholdHz) {
				g.notifyResumed(code)
				return code
			}
		}
	}
}

// Abort releases every pending and future waiter until Resume is called.
func (g *RateGate) Abort() {
	g.wakeMu.Lock()
	defer g.wakeMu.Unlock()
	if g.aborted.Swap(true) {
		return
	}
	close(g.wake)
	g.NotifyLoggers(types.DebugLevel, "rate gate aborted",
		"component", g.GetComponentMetadata(), "event", "Abort", "result", "SUCCESS")
}

// Resume clears the abort flag.
func (g *RateGate) Resume() {
	g.wakeMu.Lock()
	defer g.wakeMu.Unlock()
	if !g.aborted.Swap(false) {
		return
	}
	g.wake = make(chan struct{})
}

// Aborted reports whether the abort flag is set.
func (g *RateGate) Aborted() bool {
	return g.aborted.Load()
}

func (g *RateGate) wakeChan() <-chan struct{} {
	g.wakeMu.Lock()
	defer g.wakeMu.Unlock()
	return g.wake
}

// satisfies never treats the undefined code as a rate.
func satisfies(code types.RateCode, thresholdHz float64) bool {
	hz, ok := code.Hz()
	return ok && hz >= thresholdHz
}
