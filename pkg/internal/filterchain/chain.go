// Package filterchain removes invalid and outlying samples from one or two
// index-aligned series. Rules run in order and each sees the output of the
// previous one; when two series are filtered together an index survives only
// if every targeted series accepts it.
package filterchain

import (
	"fmt"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"gonum.org/v1/gonum/stat"
)

// PeakCurrentDevice reports bunch peak current and occasionally returns
// readings far above anything physical.
const PeakCurrentDevice = "BLEN:LI24:886:BIMAX"

// PeakCurrentLimit is the ceiling applied to PeakCurrentDevice.
const PeakCurrentLimit = 12000

// StageKind selects how a stage builds its predicate.
type StageKind string

const (
	StageFinite    StageKind = "finite"
	StageBelow     StageKind = "below"
	StageDeviation StageKind = "deviation"
)

// Stage is one filtering step. Limit is used by StageBelow, K by
// StageDeviation.
type Stage struct {
	Kind  StageKind `yaml:"kind"`
	Limit float64   `yaml:"limit,omitempty"`
	K     float64   `yaml:"k,omitempty"`
}

func (s Stage) String() string {
	switch s.Kind {
	case StageBelow:
		return fmt.Sprintf("below(%g)", s.Limit)
	case StageDeviation:
		return fmt.Sprintf("deviation(%g)", s.K)
	default:
		return string(s.Kind)
	}
}

// Predicate builds the stage predicate from the data it is about to filter.
// A deviation stage over data without finite values rejects everything.
func (s Stage) Predicate(data []float64) Predicate {
	switch s.Kind {
	case StageFinite:
		return Finite()
	case StageBelow:
		return Below(s.Limit)
	case StageDeviation:
		finite := utils.Finite(data)
		if len(finite) == 0 {
			return func(float64) bool { return false }
		}
		mean, std := stat.PopMeanStdDev(finite, nil)
		return WithinDeviation(mean, std, s.K)
	default:
		return AcceptAll()
	}
}

// Rule applies Stage to the listed slots.
type Rule struct {
	Stage Stage
	Slots []types.Slot
}

// DeviceRules maps a device name to stages applied whenever that device is
// armed on a slot.
type DeviceRules map[string][]Stage

// DefaultDeviceRules returns the built-in instrument rules.
func DefaultDeviceRules() DeviceRules {
	return DeviceRules{
		PeakCurrentDevice: {{Kind: StageBelow, Limit: PeakCurrentLimit}},
	}
}

// Chain is an ordered list of rules. The zero value keeps everything.
type Chain struct {
	Rules []Rule
}

// Options drives NewChain.
type Options struct {
	DeviceRules     DeviceRules
	FilterByStdDevs bool
	StdDevsToKeep   float64
}

// NewChain builds the standard chain for the armed devices: drop missing
// markers on every active slot, then per-device rules, then the optional
// deviation filter. An empty device name marks an inactive slot.
func NewChain(devices [types.SlotCount]string, opts Options) Chain {
	var active []types.Slot
	for i, d := range devices {
		if d != "" {
			active = append(active, types.Slot(i))
		}
	}

	c := Chain{}
	c.Rules = append(c.Rules, Rule{Stage: Stage{Kind: StageFinite}, Slots: active})
	for _, slot := range active {
		for _, st := range opts.DeviceRules[devices[slot]] {
			c.Rules = append(c.Rules, Rule{Stage: st, Slots: []types.Slot{slot}})
		}
	}
	if opts.FilterByStdDevs {
		// Each slot gets its own rule so the second one sees the result of the first.
		for _, slot := range active {
			c.Rules = append(c.Rules, Rule{Stage: Stage{Kind: StageDeviation, K: opts.StdDevsToKeep}, Slots: []types.Slot{slot}})
		}
	}
	return c
}

// Apply runs every rule over pair and returns new slices.
func (c Chain) Apply(pair types.SynchronizedPair) types.SynchronizedPair {
	series := [types.SlotCount][]float64{pair.A, pair.B}
	for _, rule := range c.Rules {
		var preds [types.SlotCount]Predicate
		for _, slot := range rule.Slots {
			if slot.Valid() {
				preds[slot] = rule.Stage.Predicate(series[slot])
			}
		}
		next := FilterPair(types.SynchronizedPair{A: series[types.SlotA], B: series[types.SlotB]}, preds[types.SlotA], preds[types.SlotB])
		series[types.SlotA], series[types.SlotB] = next.A, next.B
	}
	return types.SynchronizedPair{
		A:        append([]float64(nil), series[types.SlotA]...),
		B:        append([]float64(nil), series[types.SlotB]...),
		BadShots: pair.BadShots,
	}
}

// ApplySeries runs the rules that target slot A against y and reduces the
// axis x in lockstep. x and y must have equal length.
func (c Chain) ApplySeries(x, y []float64) (fx, fy []float64) {
	fx, fy = x, y
	for _, rule := range c.Rules {
		if !utils.Contains(rule.Slots, types.SlotA) {
			continue
		}
		out := FilterSeries(fy, rule.Stage.Predicate(fy), fx, fy)
		fx, fy = out[0], out[1]
	}
	return append([]float64(nil), fx...), append([]float64(nil), fy...)
}

// Describe lists the stages for logging.
func (c Chain) Describe() []string {
	out := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		out = append(out, fmt.Sprintf("%s%v", r.Stage, r.Slots))
	}
	return out
}
