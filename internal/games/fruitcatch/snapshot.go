package fruitcatch

import (
	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
)

// WheelView is the wheel part of a frame.
type WheelView struct {
	Layout    Layout // Immutable, safe to share
	Rotation  float64
	Spinning  bool
	HasResult bool
	Result    Segment
	Bonus     int
}

// Frame is an immutable copy of everything needed to draw one tick.
// It shares no mutable state with the game.
type Frame struct {
	Tick           uint64
	Title          string
	ScreenW        int
	ScreenH        int
	ScreenTooSmall bool
	Objects        []FallingObject
	Basket         Basket
	Round          RoundState
	Quota          int
	Difficulty     config.RoundDifficulty
	Wheel          WheelView
	Paused         bool
}

// Frame captures the current state.
func (g *Game) Frame() Frame {
	if g.machine == nil {
		return Frame{Title: g.Title()}
	}
	return Frame{
		Tick:           g.tick,
		Title:          g.Title(),
		ScreenW:        g.runtime.ScreenW,
		ScreenH:        g.runtime.ScreenH,
		ScreenTooSmall: g.screenTooSmall,
		Objects:        g.spawner.Snapshot(),
		Basket:         g.basket,
		Round:          g.machine.State(),
		Quota:          g.machine.FruitsPerRound(),
		Difficulty:     g.machine.Difficulty(),
		Wheel: WheelView{
			Layout:    g.resolver.Layout,
			Rotation:  g.spin.Rotation,
			Spinning:  g.spin.Spinning(),
			HasResult: g.hasResult,
			Result:    g.result,
			Bonus:     g.bonus,
		},
		Paused: g.paused,
	}
}

// State returns the platform-level state captured in the frame.
func (f Frame) State() core.GameState {
	return core.GameState{
		Score:    f.Round.Score,
		Round:    f.Round.Round,
		Lives:    f.Round.Lives,
		Phase:    string(f.Round.Phase),
		GameOver: f.Round.Phase == PhaseGameOver,
		Paused:   f.Paused,
	}
}
