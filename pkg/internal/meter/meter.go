package meter

import (
	"sync"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultUpdateInterval = 5 * time.Second

// Meter keeps process counters in memory and mirrors them into a private
// prometheus registry.
type Meter struct {
	hooksMu           sync.RWMutex
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger

	namespace   string
	constLabels prometheus.Labels
	registry    *prometheus.Registry

	mu         sync.Mutex
	counts     map[string]uint64
	gauges     map[string]float64
	counters   map[string]prometheus.Counter
	gaugeVecs  map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram

	interval  time.Duration
	hostStats bool
}

// NewMeter builds a Meter with every known metric registered up front.
func NewMeter(options ...types.Option[*Meter]) *Meter {
	m := &Meter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		namespace:  "rtbsa",
		counts:     make(map[string]uint64),
		gauges:     make(map[string]float64),
		counters:   make(map[string]prometheus.Counter),
		gaugeVecs:  make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
		interval:   defaultUpdateInterval,
		hostStats:  true,
	}

	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}

	m.registry = prometheus.NewRegistry()
	m.initializeMetrics()
	return m
}
