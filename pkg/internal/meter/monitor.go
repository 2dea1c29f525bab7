package meter

import (
	"context"
	"runtime"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Monitor samples host CPU, memory and goroutine counts on every interval
// until ctx ends. It is a no-op when host statistics are disabled.
func (m *Meter) Monitor(ctx context.Context) {
	if !m.hostStats {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sampleHost()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sampleHost()
		}
	}
}

func (m *Meter) sampleHost() {
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		m.SetGauge(types.MetricCurrentCpuPercentage, pct[0])
	} else if err != nil {
		m.NotifyLoggers(types.DebugLevel, "host cpu sample failed",
			"component", m.GetComponentMetadata(), "event", "SampleHost", "error", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		m.SetGauge(types.MetricCurrentRamPercentage, vm.UsedPercent)
	} else {
		m.NotifyLoggers(types.DebugLevel, "host memory sample failed",
			"component", m.GetComponentMetadata(), "event", "SampleHost", "error", err)
	}

	m.SetGauge(types.MetricCurrentGoRoutinesActive, float64(runtime.NumGoroutine()))
}
