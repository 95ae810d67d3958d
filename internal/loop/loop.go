// Package loop drives a game at a fixed tick rate on its own goroutine and
// publishes immutable frames for the presentation layer.
package loop

import (
	"context"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/registry"
)

// DefaultTickRate is used when the tick rate is not positive.
const DefaultTickRate = 60

// Game is the part of registry.Game the loop drives.
type Game interface {
	Step(in core.InputFrame) core.StepResult
	Snapshot() registry.Frame
}

// Update is one published tick.
type Update struct {
	Tick   uint64
	Frame  registry.Frame
	Result core.StepResult
}

type size struct {
	w, h int
}

// Loop owns the game while running: Step, Resize and Snapshot are only
// called from the loop goroutine. Send, SetPointer and Resize are safe to
// call from any goroutine.
type Loop struct {
	game     Game
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	pending core.InputFrame
	resize  *size

	pointerBits atomic.Uint64
	hasPointer  atomic.Bool

	frames chan Update
	done   chan struct{}

	ticks    atomic.Uint64
	overruns atomic.Uint64
	running  atomic.Bool
}

// New creates a loop for game at tickRate ticks per second.
func New(game Game, tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Loop{
		game:     game,
		interval: time.Second / time.Duration(tickRate),
		logger:   log.New(io.Discard),
		pending:  core.NewInputFrame(),
		frames:   make(chan Update, 1),
		done:     make(chan struct{}),
	}
}

// SetLogger sets the logger for lifecycle and overrun messages.
// Must be called before Run.
func (l *Loop) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l.logger = logger
}

// Interval returns the target tick duration.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Send queues an action for the next tick. Repeated actions accumulate.
func (l *Loop) Send(a core.Action) {
	if a == core.ActionNone {
		return
	}
	l.mu.Lock()
	l.pending.Set(a)
	l.mu.Unlock()
}

// SetPointer publishes the latest pointer column. The next tick consumes it.
func (l *Loop) SetPointer(x float64) {
	l.pointerBits.Store(math.Float64bits(x))
	l.hasPointer.Store(true)
}

// Resize schedules a screen resize before the next tick. Games that do not
// implement registry.Resizer ignore it.
func (l *Loop) Resize(w, h int) {
	l.mu.Lock()
	l.resize = &size{w: w, h: h}
	l.mu.Unlock()
}

// Frames returns the single-slot update channel. An unread update is
// replaced by the newer one, so readers only ever see the latest tick.
func (l *Loop) Frames() <-chan Update {
	return l.frames
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Ticks returns the number of ticks run so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Overruns returns how many ticks took longer than the interval.
func (l *Loop) Overruns() uint64 {
	return l.overruns.Load()
}

// Run ticks until ctx is cancelled and returns ctx.Err(). Each tick sleeps
// only for what is left of the interval; a tick that overruns starts the
// next one at once without trying to catch up. Run may only be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		panic("loop: Run called twice")
	}
	defer close(l.done)

	l.logger.Debug("loop started", "interval", l.interval)
	defer l.logger.Debug("loop stopped", "ticks", l.Ticks(), "overruns", l.Overruns())

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		l.Tick()
		elapsed := time.Since(start)

		if elapsed >= l.interval {
			n := l.overruns.Add(1)
			l.logger.Debug("tick overrun", "elapsed", elapsed, "interval", l.interval, "overruns", n)
			continue
		}

		timer.Reset(l.interval - elapsed)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Tick runs one step synchronously: drains queued input, steps the game
// and publishes the resulting frame. Run calls it; headless callers may
// call it directly instead of Run, never both.
func (l *Loop) Tick() Update {
	in, rs := l.drain()
	if rs != nil {
		if r, ok := l.game.(registry.Resizer); ok {
			r.Resize(rs.w, rs.h)
		}
	}

	res := l.game.Step(in)
	u := Update{
		Tick:   l.ticks.Add(1),
		Frame:  l.game.Snapshot(),
		Result: res,
	}
	l.publish(u)
	return u
}

func (l *Loop) drain() (core.InputFrame, *size) {
	next := core.NewInputFrame()

	l.mu.Lock()
	in := l.pending
	l.pending = next
	rs := l.resize
	l.resize = nil
	l.mu.Unlock()

	if l.hasPointer.Swap(false) {
		in.SetPointer(math.Float64frombits(l.pointerBits.Load()))
	}
	return in, rs
}

// publish never blocks: with a single producer, at most one stale update
// has to be dropped before the send succeeds.
func (l *Loop) publish(u Update) {
	for {
		select {
		case l.frames <- u:
			return
		default:
		}
		select {
		case <-l.frames:
		default:
		}
	}
}
