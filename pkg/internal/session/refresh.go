package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/fitengine"
	"github.com/joeydtaylor/rtbsa/pkg/internal/rategate"
	"github.com/joeydtaylor/rtbsa/pkg/internal/spectrum"
	"github.com/joeydtaylor/rtbsa/pkg/internal/synchronizer"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

// Refresh computes one frame for the current mode. It never fails: missing
// data and numeric problems are reported through Frame.Kind and Frame.Status.
func (s *Session) Refresh(ctx context.Context) (frame types.Frame) {
	start := time.Now()

	s.mu.Lock()
	armed := s.armed
	devices := s.devices
	views := [types.SlotCount]types.BufferView{s.buffers[types.SlotA].View(), s.buffers[types.SlotB].View()}
	s.mu.Unlock()

	code := s.gate.CurrentRate()
	frame = types.Frame{
		SessionID: s.id,
		Sequence:  s.sequence.Add(1),
		Mode:      s.mode,
		Title:     title(s.mode, devices),
		Devices:   devices,
		Rate:      code,
		Fit:       types.FitResult{Kind: types.FitNone},
	}

	defer func() {
		if r := recover(); r != nil {
			frame.X, frame.Y, frame.Spectrum = nil, nil, types.Spectrum{}
			frame.Kind = types.ResultNumericFailure
			frame.Status = fmt.Sprintf("refresh failed: %v", r)
			s.notifyError("Refresh", errors.New(frame.Status))
		}
		s.notifyRefresh(frame, time.Since(start))
	}()

	if !armed || s.gate.Aborted() {
		return noData(frame, StatusStopped)
	}
	if ctx != nil && ctx.Err() != nil {
		return noData(frame, StatusStopped)
	}

	chain := s.filterChain(devices)

	switch s.mode {
	case types.ModeCorrelation:
		return s.refreshCorrelation(frame, chain, views, code)
	case types.ModeSpectrum:
		return s.refreshSpectrum(frame, views[types.SlotA], code)
	default:
		return s.refreshTimeSeries(frame, chain, views[types.SlotA])
	}
}

func (s *Session) refreshTimeSeries(frame types.Frame, chain filterchain.Chain, view types.BufferView) types.Frame {
	window := utils.Tail(view.Values, s.numPoints)
	x, y := chain.ApplySeries(utils.Index(len(window)), window)
	if len(y) == 0 {
		return noData(frame, StatusNoData)
	}
	frame.X, frame.Y = x, y
	frame.Stats = fitengine.Summarize(y)
	return s.withFit(frame, x, y)
}

func (s *Session) refreshCorrelation(frame types.Frame, chain filterchain.Chain, views [types.SlotCount]types.BufferView, code types.RateCode) types.Frame {
	hz, ok := code.Hz()
	if !ok || hz < s.minRateHz {
		return noData(frame, rategate.WaitingMessage(s.minRateHz))
	}
	pair, err := synchronizer.Synchronize(views[types.SlotA], views[types.SlotB], hz, s.numPoints)
	if err != nil {
		return noData(frame, StatusNoData)
	}
	pair = chain.Apply(pair)
	if pair.Len() == 0 {
		return noData(frame, StatusNoData)
	}
	frame.X, frame.Y = pair.A, pair.B
	frame.Stats = fitengine.SummarizePair(pair.A, pair.B)
	return s.withFit(frame, pair.A, pair.B)
}

func (s *Session) refreshSpectrum(frame types.Frame, view types.BufferView, code types.RateCode) types.Frame {
	hz, ok := code.Hz()
	if !ok || hz <= 0 {
		return noData(frame, rategate.WaitingMessage(s.minRateHz))
	}
	window := utils.Tail(view.Values, s.numPoints)
	spec, err := spectrum.Compute(window, hz)
	if err != nil || spec.Len() == 0 {
		return noData(frame, StatusNoData)
	}
	frame.Spectrum = spec
	frame.X, frame.Y = spec.Frequencies, spec.Magnitudes
	frame.Stats = fitengine.Summarize(window)
	frame.Kind = types.ResultOK
	frame.Status = StatusRunning
	return frame
}

// withFit attaches the configured fit. A degenerate fit keeps the data but
// marks the frame as a numeric failure.
func (s *Session) withFit(frame types.Frame, x, y []float64) types.Frame {
	switch s.fitKind {
	case types.FitLinear:
		frame.Fit = fitengine.Linear(x, y)
	case types.FitPolynomial:
		frame.Fit = fitengine.Polynomial(x, y, s.fitOrder)
	}

	frame.Kind = types.ResultOK
	frame.Status = StatusRunning
	if frame.Fit.Status == types.FitFailed {
		frame.Kind = types.ResultNumericFailure
		frame.Status = frame.Fit.Summary
	}
	return frame
}

func (s *Session) filterChain(devices [types.SlotCount]string) filterchain.Chain {
	return filterchain.NewChain(devices, filterchain.Options{
		DeviceRules:     s.deviceRules,
		FilterByStdDevs: s.filterByStdDevs,
		StdDevsToKeep:   s.stdDevsToKeep,
	})
}

func noData(frame types.Frame, status string) types.Frame {
	frame.Kind = types.ResultNoData
	frame.Status = status
	return frame
}

func title(mode types.Mode, devices [types.SlotCount]string) string {
	switch mode {
	case types.ModeCorrelation:
		return fmt.Sprintf("%s vs. %s", devices[types.SlotB], devices[types.SlotA])
	case types.ModeSpectrum:
		return devices[types.SlotA] + " FFT"
	default:
		return devices[types.SlotA]
	}
}
