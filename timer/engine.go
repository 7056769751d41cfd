// Package timer implements the workflow timer engine: a single goroutine
// owns the state machine, serialises commands and ticks, mirrors every
// transition to a Persister and publishes events to subscribers.
package timer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tomatoclock/tomato/internal/workflow"
)

const (
	defaultQueueSize   = 100
	defaultEventBuffer = 100
)

type (
	// TickerFunc starts a tick source and returns its channel and a stop
	// function.
	TickerFunc func() (<-chan time.Time, func())

	// Option configures an Engine.
	Option func(*Engine)

	request struct {
		cmd Command
		ack chan<- result
	}

	result struct {
		snap Snapshot
		err  error
	}
)

// Engine runs the timer state machine on its own goroutine.
type Engine struct {
	machine   *Machine
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	ticker    TickerFunc

	mu   sync.RWMutex
	snap Snapshot

	commands chan request
	events   chan Event

	subMu       sync.RWMutex
	subscribers []Subscriber

	queueSize   int
	eventBuffer int

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	wg        sync.WaitGroup
}

// WithPersister sets where the engine saves its state.
func WithPersister(p Persister) Option {
	return func(e *Engine) {
		e.persister = p
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithTicker replaces the one-second ticker.
func WithTicker(f TickerFunc) Option {
	return func(e *Engine) {
		e.ticker = f
	}
}

// WithDefaults sets the workflow and status used by a Start without them.
func WithDefaults(w *workflow.Workflow, s *workflow.Status) Option {
	return func(e *Engine) {
		e.machine.SetDefaults(w, s)
	}
}

// WithQueueSize sets the capacity of the command queue.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		e.queueSize = n
	}
}

// WithEventBuffer sets how many events may wait for the dispatcher before
// new ones are dropped.
func WithEventBuffer(n int) Option {
	return func(e *Engine) {
		e.eventBuffer = n
	}
}

func secondTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(time.Second)

	return t.C, t.Stop
}

// New creates an engine and restores the last saved state. Failing to load
// the saved state is not fatal: the engine starts idle.
func New(opts ...Option) *Engine {
	e := &Engine{
		machine:     NewMachine(nil, nil),
		persister:   nopPersister{},
		logger:      slog.Default(),
		now:         time.Now,
		ticker:      secondTicker,
		queueSize:   defaultQueueSize,
		eventBuffer: defaultEventBuffer,
		done:        make(chan struct{}),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.machine.now = e.now
	e.machine.logger = e.logger
	e.commands = make(chan request, e.queueSize)
	e.events = make(chan Event, e.eventBuffer)

	e.restore()
	e.snap = e.machine.Snapshot()

	return e
}

func (e *Engine) restore() {
	rec, err := e.persister.Load()
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			e.logger.Warn("loading saved timer state failed", slog.Any("error", err))
		}

		return
	}

	snap := rec.Snapshot(e.logger)
	e.machine.Restore(snap)

	e.logger.Info(
		"restored timer state",
		slog.String("state", string(snap.State)),
		slog.String("phase", phaseName(snap.CurrentPhase)),
		slog.Duration("elapsed", snap.ElapsedTime),
	)
}

// Subscribe registers an observer for subsequent events.
func (e *Engine) Subscribe(s Subscriber) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	e.subscribers = append(e.subscribers, s)
}

// Snapshot returns the most recently published state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snap
}

// Submit queues a command without waiting for it to be processed. It blocks
// only while the queue is full.
func (e *Engine) Submit(ctx context.Context, cmd Command) error {
	return e.enqueue(ctx, request{cmd: cmd})
}

// SubmitWait queues a command and returns the state produced by it, or the
// reason it was rejected.
func (e *Engine) SubmitWait(ctx context.Context, cmd Command) (Snapshot, error) {
	ack := make(chan result, 1)

	if err := e.enqueue(ctx, request{cmd: cmd, ack: ack}); err != nil {
		return Snapshot{}, err
	}

	select {
	case res := <-ack:
		return res.snap, res.err
	case <-e.done:
		// The loop may have answered just before shutting down.
		select {
		case res := <-ack:
			return res.snap, res.err
		default:
			return Snapshot{}, ErrEngineClosed
		}
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (e *Engine) enqueue(ctx context.Context, req request) error {
	select {
	case <-e.done:
		return ErrEngineClosed
	default:
	}

	select {
	case e.commands <- req:
		return nil
	case <-e.done:
		return ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the engine loop in the background until ctx is cancelled or
// Close is called.
func (e *Engine) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		ctx, e.cancel = context.WithCancel(ctx)

		e.wg.Add(2)

		go func() {
			defer e.wg.Done()
			e.dispatch()
		}()

		go func() {
			defer e.wg.Done()
			e.run(ctx)
		}()
	})
}

// Run runs the engine loop on the calling goroutine and returns once ctx is
// cancelled and the engine has shut down.
func (e *Engine) Run(ctx context.Context) error {
	e.Start(ctx)
	e.wg.Wait()

	return nil
}

// Close stops the loop, saves the final state and waits for pending events
// to be delivered.
func (e *Engine) Close() error {
	// Prevent a later Start from racing with shutdown.
	e.startOnce.Do(func() {})

	if e.cancel != nil {
		e.cancel()
	} else {
		e.shutdown()
	}

	e.wg.Wait()

	return nil
}

func (e *Engine) run(ctx context.Context) {
	defer e.shutdown()

	ticks, stop := e.ticker()
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			e.apply(e.machine.Tick())
		case req := <-e.commands:
			out, err := e.machine.Apply(req.cmd)
			if err != nil {
				e.logger.Warn(
					"command rejected",
					slog.String("command", string(req.cmd.Kind)),
					slog.Any("error", err),
				)
			}

			snap := e.apply(out)

			if req.ack != nil {
				req.ack <- result{snap: snap, err: err}
			}
		}
	}
}

// apply publishes the machine state and carries out the outcome.
func (e *Engine) apply(out Outcome) Snapshot {
	snap := e.machine.Snapshot()

	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	if out.Persist {
		e.persist(snap)
	}

	for _, ev := range out.Events {
		e.publish(ev)
	}

	return snap
}

func (e *Engine) persist(snap Snapshot) {
	if err := e.persister.Save(NewRecord(snap, e.now())); err != nil {
		e.logger.Warn("saving timer state failed", slog.Any("error", err))
	}
}

func (e *Engine) publish(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.logger.Warn(
			"event buffer full, dropping event",
			slog.String("event", string(ev.Type)),
		)
	}
}

func (e *Engine) dispatch() {
	for ev := range e.events {
		e.subMu.RLock()
		subs := append([]Subscriber(nil), e.subscribers...)
		e.subMu.RUnlock()

		for _, s := range subs {
			e.deliver(s, ev)
		}
	}
}

func (e *Engine) deliver(s Subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error(
				"event subscriber panicked",
				slog.String("event", string(ev.Type)),
				slog.Any("panic", r),
			)
		}
	}()

	s.HandleEvent(ev)
}

// shutdown runs once, after the loop has exited or instead of it.
func (e *Engine) shutdown() {
	e.stopOnce.Do(func() {
		close(e.done)
		e.persist(e.machine.Snapshot())
		close(e.events)
	})
}

type nopPersister struct{}

func (nopPersister) Load() (*Record, error) { return nil, ErrNoRecord }

func (nopPersister) Save(Record) error { return nil }
