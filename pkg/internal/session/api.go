package session

import (
	"context"
	"fmt"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// Arm selects the devices for the next acquisition, clears both buffers and
// lifts any previous abort. devB is only required in correlation mode.
func (s *Session) Arm(devA, devB string) error {
	if devA == "" {
		return fmt.Errorf("%w: slot %s", ErrNoDevice, types.SlotA)
	}
	if s.mode == types.ModeCorrelation && devB == "" {
		return fmt.Errorf("%w: slot %s", ErrNoDevice, types.SlotB)
	}
	if s.mode != types.ModeCorrelation {
		devB = ""
	}

	s.mu.Lock()
	s.devices = [types.SlotCount]string{devA, devB}
	for _, b := range s.buffers {
		b.Reset()
	}
	s.armed = true
	s.status = StatusInitializing
	s.mu.Unlock()

	s.gate.Resume()
	chain := s.filterChain([types.SlotCount]string{devA, devB})
	s.NotifyLoggers(types.InfoLevel, StatusInitializing,
		"component", s.GetComponentMetadata(), "event", "Arm", "result", "SUCCESS",
		"session", s.id, "mode", string(s.mode), "device_a", devA, "device_b", devB,
		"filters", chain.Describe())
	return nil
}

// HandleEvent applies one control-system event. Rate events update the gate;
// snapshot and update events go to every slot armed with the event's device
// (or to the explicit slot when set). Events arriving after Stop are ignored.
func (s *Session) HandleEvent(ctx context.Context, ev types.Event) error {
	s.notifyEvent(ev)

	if ev.Kind == types.EventRateChange {
		s.gate.Observe(ev.Rate)
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed || s.gate.Aborted() {
		return nil
	}

	slots := s.resolveSlots(ev)
	if len(slots) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, ev.Device)
	}

	switch ev.Kind {
	case types.EventHistorySnapshot:
		if ev.Snapshot == nil {
			return fmt.Errorf("session: snapshot event without payload")
		}
		for _, slot := range slots {
			s.buffers[slot].ApplyHistorySnapshot(ev.Snapshot.Values, ev.Snapshot.Timestamp)
			s.notifySnapshot(slot, len(ev.Snapshot.Values))
		}
	case types.EventValueUpdate:
		if ev.Update == nil {
			return fmt.Errorf("session: update event without payload")
		}
		hz, _ := s.gate.CurrentRate().Hz()
		for _, slot := range slots {
			res := s.buffers[slot].ApplyIncrementalUpdate(ev.Update.Value, ev.Update.Timestamp, hz)
			s.notifyUpdate(slot, res)
		}
	default:
		return fmt.Errorf("session: unhandled event kind %q", ev.Kind)
	}
	return nil
}

// resolveSlots must be called with mu held.
func (s *Session) resolveSlots(ev types.Event) []types.Slot {
	if ev.Slot != nil {
		if ev.Slot.Valid() && s.devices[*ev.Slot] != "" {
			return []types.Slot{*ev.Slot}
		}
		return nil
	}
	var out []types.Slot
	for i, d := range s.devices {
		if d != "" && d == ev.Device {
			out = append(out, types.Slot(i))
		}
	}
	return out
}

// Initialize waits until every active slot has received its history and, in
// correlation mode, until the rate reaches the configured minimum. It returns
// ErrAborted when Stop is called or ctx ends first; buffers are left as they
// are in that case.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	armed := s.armed
	s.mu.Unlock()
	if !armed {
		return ErrNotArmed
	}

	ticker := time.NewTicker(s.seedPoll)
	defer ticker.Stop()

	for !s.seeded() {
		if s.gate.Aborted() {
			return ErrAborted
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrAborted, ctx.Err())
		case <-ticker.C:
		}
	}

	if s.mode == types.ModeCorrelation {
		code := s.gate.WaitForMinimumRate(ctx, s.minRateHz)
		if s.gate.Aborted() {
			return ErrAborted
		}
		if hz, ok := code.Hz(); !ok || hz < s.minRateHz {
			return fmt.Errorf("%w: rate %s below %gHz", ErrAborted, code, s.minRateHz)
		}
	}

	s.mu.Lock()
	s.status = StatusRunning
	s.mu.Unlock()
	s.notifyStart()
	return nil
}

func (s *Session) seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.activeSlots() {
		if !s.buffers[slot].Seeded() {
			return false
		}
	}
	return true
}

// Stop aborts pending waits and clears both buffers.
func (s *Session) Stop() {
	s.gate.Abort()

	s.mu.Lock()
	wasArmed := s.armed
	for _, b := range s.buffers {
		b.Reset()
	}
	s.armed = false
	s.status = StatusStopped
	s.mu.Unlock()

	if wasArmed {
		s.notifyStop()
	}
}
