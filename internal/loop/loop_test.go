package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/registry"
)

type stubFrame struct {
	step int
}

func (f stubFrame) Render(dst *core.Screen) {}

func (f stubFrame) State() core.GameState {
	return core.GameState{Score: f.step}
}

// stubGame records what the loop feeds it. Only the loop goroutine touches
// it while Run is active.
type stubGame struct {
	steps   int
	inputs  []core.InputFrame
	lefts   int
	delay   time.Duration
	resized []size
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	g.lefts += in.Count(core.ActionLeft)
	return core.StepResult{State: core.GameState{Score: g.steps}}
}

func (g *stubGame) Snapshot() registry.Frame {
	return stubFrame{step: g.steps}
}

func (g *stubGame) Resize(w, h int) {
	g.resized = append(g.resized, size{w: w, h: h})
}

func TestNewDefaultsTickRate(t *testing.T) {
	l := New(&stubGame{}, 0)
	if l.Interval() != time.Second/DefaultTickRate {
		t.Errorf("Interval() = %v, expected %v", l.Interval(), time.Second/DefaultTickRate)
	}
	if New(&stubGame{}, 120).Interval() != time.Second/120 {
		t.Error("tick rate 120 not honored")
	}
}

func TestTickDrainsInput(t *testing.T) {
	g := &stubGame{}
	l := New(g, 60)

	l.Send(core.ActionLeft)
	l.Send(core.ActionLeft)
	l.Send(core.ActionConfirm)
	l.Send(core.ActionNone)
	u := l.Tick()

	if u.Tick != 1 || u.Result.State.Score != 1 {
		t.Errorf("update = %+v", u)
	}
	in := g.inputs[0]
	if in.Count(core.ActionLeft) != 2 || !in.Has(core.ActionConfirm) {
		t.Errorf("first input = %+v", in.Actions)
	}
	if in.Has(core.ActionNone) {
		t.Error("ActionNone should not be queued")
	}

	l.Tick()
	if len(g.inputs[1].Actions) != 0 {
		t.Errorf("second input should be empty, got %+v", g.inputs[1].Actions)
	}
}

func TestPointerConsumedOnce(t *testing.T) {
	g := &stubGame{}
	l := New(g, 60)

	l.SetPointer(12.5)
	l.SetPointer(17.25)
	l.Tick()
	l.Tick()

	if !g.inputs[0].HasPointer || g.inputs[0].PointerX != 17.25 {
		t.Errorf("first input pointer = %v/%v, expected latest 17.25", g.inputs[0].HasPointer, g.inputs[0].PointerX)
	}
	if g.inputs[1].HasPointer {
		t.Error("pointer should be consumed by one tick")
	}
}

func TestResizeAppliedBeforeStep(t *testing.T) {
	g := &stubGame{}
	l := New(g, 60)

	l.Resize(40, 20)
	l.Resize(50, 30)
	l.Tick()
	l.Tick()

	if len(g.resized) != 1 || g.resized[0] != (size{50, 30}) {
		t.Errorf("resized = %v, expected one resize to 50x30", g.resized)
	}
}

func TestPublishDropsOldest(t *testing.T) {
	l := New(&stubGame{}, 60)

	for range 5 {
		l.Tick()
	}

	if n := len(l.Frames()); n != 1 {
		t.Fatalf("channel holds %d updates, expected 1", n)
	}
	u := <-l.Frames()
	if u.Tick != 5 {
		t.Errorf("Tick = %d, expected latest 5", u.Tick)
	}
	if u.Frame.State().Score != 5 {
		t.Errorf("frame state = %+v", u.Frame.State())
	}
}

func TestRunPublishesAndStops(t *testing.T) {
	g := &stubGame{}
	l := New(g, 1000)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var last uint64
	for range 3 {
		select {
		case u := <-l.Frames():
			if u.Tick <= last {
				t.Errorf("tick %d after %d", u.Tick, last)
			}
			last = u.Tick
		case <-time.After(2 * time.Second):
			t.Fatal("no frame published")
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	select {
	case <-l.Done():
	default:
		t.Error("Done should be closed after Run returns")
	}
	if l.Ticks() != uint64(g.steps) {
		t.Errorf("Ticks() = %d, game stepped %d times", l.Ticks(), g.steps)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	g := &stubGame{}
	l := New(g, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v", err)
	}
	if g.steps != 0 {
		t.Errorf("stepped %d times on a cancelled context", g.steps)
	}
}

func TestRunCountsOverruns(t *testing.T) {
	g := &stubGame{delay: 3 * time.Millisecond}
	l := New(g, 1000)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := l.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v", err)
	}
	if l.Overruns() == 0 {
		t.Error("expected overruns for a tick slower than the interval")
	}
	// Overrunning ticks do not backlog: every step ran at least delay long.
	if limit := int(100*time.Millisecond/g.delay) + 1; g.steps > limit {
		t.Errorf("stepped %d times, expected at most %d", g.steps, limit)
	}
}

func TestRunTwicePanics(t *testing.T) {
	l := New(&stubGame{}, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = l.Run(ctx)

	defer func() {
		if recover() == nil {
			t.Error("second Run should panic")
		}
	}()
	_ = l.Run(ctx)
}

func TestConcurrentSend(t *testing.T) {
	g := &stubGame{}
	l := New(g, 1000)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()

	const senders, perSender = 8, 500
	var wg sync.WaitGroup
	for range senders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perSender {
				l.Send(core.ActionLeft)
				l.SetPointer(float64(i))
			}
		}()
	}
	go func() {
		for {
			select {
			case <-l.Frames():
			case <-done:
				return
			}
		}
	}()

	wg.Wait()
	cancel()
	<-done

	// Flush whatever arrived after the last tick.
	l.Tick()
	if g.lefts != senders*perSender {
		t.Errorf("game saw %d lefts, expected %d", g.lefts, senders*perSender)
	}
}
