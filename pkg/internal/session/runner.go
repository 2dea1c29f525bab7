package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

const DefaultRefreshInterval = 50 * time.Millisecond

// Runner drives a Session: it serves every event source into the session,
// waits for initialization, then refreshes on a ticker and hands each frame
// to the publishers.
type Runner struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	session    *Session
	sources    []types.EventSource
	publishers []types.FramePublisher
	interval   time.Duration

	started  int32
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopLock sync.Mutex
	cfgLock  sync.Mutex

	loggers     []types.Logger
	loggersLock sync.Mutex
}

func NewRunner(s *Session, options ...types.Option[*Runner]) *Runner {
	r := &Runner{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "RUNNER",
		},
		session:  s,
		interval: DefaultRefreshInterval,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func WithSource(sources ...types.EventSource) types.Option[*Runner] {
	return func(r *Runner) { r.sources = append(r.sources, sources...) }
}

func WithPublisher(publishers ...types.FramePublisher) types.Option[*Runner] {
	return func(r *Runner) { r.publishers = append(r.publishers, publishers...) }
}

// WithRefreshInterval sets the refresh period. Non-positive values keep the
// default.
func WithRefreshInterval(d time.Duration) types.Option[*Runner] {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithRunnerLogger(loggers ...types.Logger) types.Option[*Runner] {
	return func(r *Runner) {
		r.loggersLock.Lock()
		r.loggers = append(r.loggers, loggers...)
		r.loggersLock.Unlock()
	}
}

// Session returns the driven session.
func (r *Runner) Session() *Session { return r.session }

// IsStarted reports whether Start has run without a matching Stop.
func (r *Runner) IsStarted() bool { return atomic.LoadInt32(&r.started) == 1 }

// Start launches the sources and the refresh loop. The session must be armed.
func (r *Runner) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&r.started, 0, 1) {
		return fmt.Errorf("runner already started")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		atomic.StoreInt32(&r.started, 0)
		return err
	}

	r.stopLock.Lock()
	r.stopOnce = sync.Once{}
	r.stopLock.Unlock()

	r.cfgLock.Lock()
	r.ctx, r.cancel = context.WithCancel(ctx)
	runCtx := r.ctx
	sources := append([]types.EventSource(nil), r.sources...)
	r.cfgLock.Unlock()

	for _, src := range sources {
		if src == nil {
			continue
		}
		r.wg.Add(1)
		go func(src types.EventSource) {
			defer r.wg.Done()
			r.serve(runCtx, src)
		}(src)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.refreshLoop(runCtx)
	}()

	r.notify(types.InfoLevel, "runner started", "event", "Start", "result", "SUCCESS",
		"sources", len(sources), "interval", r.interval.String())
	return nil
}

// Stop aborts the session, cancels every goroutine and waits for them.
func (r *Runner) Stop() error {
	r.stopLock.Lock()
	defer r.stopLock.Unlock()

	r.stopOnce.Do(func() {
		if atomic.CompareAndSwapInt32(&r.started, 1, 0) {
			r.session.Stop()
			r.cfgLock.Lock()
			cancel := r.cancel
			r.cfgLock.Unlock()
			if cancel != nil {
				cancel()
			}
			r.wg.Wait()
			r.notify(types.InfoLevel, "runner stopped", "event", "Stop", "result", "SUCCESS")
		}
	})
	return nil
}

func (r *Runner) serve(ctx context.Context, src types.EventSource) {
	meta := src.GetComponentMetadata()
	submit := func(ctx context.Context, ev types.Event) error {
		err := r.session.HandleEvent(ctx, ev)
		if err != nil {
			r.notify(types.DebugLevel, "event rejected", "event", "HandleEvent", "result", "DROPPED",
				"source", meta.ID, "device", ev.Device, "error", err)
		}
		return err
	}
	if err := src.Serve(ctx, submit); err != nil && !errors.Is(err, context.Canceled) {
		r.session.notifyError("Serve", fmt.Errorf("source %s: %w", meta.Type, err))
	}
}

func (r *Runner) refreshLoop(ctx context.Context) {
	if err := r.session.Initialize(ctx); err != nil {
		if !errors.Is(err, ErrAborted) {
			r.session.notifyError("Initialize", err)
		}
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame := r.session.Refresh(ctx)
			r.publish(ctx, frame)
		}
	}
}

func (r *Runner) publish(ctx context.Context, frame types.Frame) {
	r.cfgLock.Lock()
	publishers := append([]types.FramePublisher(nil), r.publishers...)
	r.cfgLock.Unlock()

	for _, p := range publishers {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, frame); err != nil && ctx.Err() == nil {
			r.notify(types.WarnLevel, "frame publish failed", "event", "Publish", "result", "FAILURE",
				"sequence", frame.Sequence, "error", err)
		}
	}
}

func (r *Runner) notify(level types.LogLevel, msg string, kv ...interface{}) {
	r.metadataLock.Lock()
	meta := r.componentMetadata
	r.metadataLock.Unlock()

	r.loggersLock.Lock()
	loggers := append([]types.Logger(nil), r.loggers...)
	r.loggersLock.Unlock()
	if len(loggers) == 0 {
		r.session.NotifyLoggers(level, msg, append([]interface{}{"component", meta}, kv...)...)
		return
	}

	kv = append([]interface{}{"component", meta}, kv...)
	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, kv...)
		case types.InfoLevel:
			logger.Info(msg, kv...)
		case types.WarnLevel:
			logger.Warn(msg, kv...)
		default:
			logger.Error(msg, kv...)
		}
	}
}
