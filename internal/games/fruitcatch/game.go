// Package fruitcatch implements the Fruit Catch round engine: falling
// objects, basket collisions, the round state machine and the reward wheel.
package fruitcatch

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/core"
	"github.com/vovakirdan/fruit-catch/internal/registry"
)

// Minimum playable screen size.
const (
	MinScreenW = 20
	MinScreenH = 10
)

// Mode selects the quota rule.
type Mode int

const (
	ModeClassic Mode = iota // Misses count toward the round quota
	ModeStrict              // Only caught fruit count
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig loads configuration the way Reset does: config file lookup
// plus the CLI difficulty preset.
func LoadConfig() config.FruitCatchConfig {
	return LoadConfigPreset(difficultyPreset)
}

// LoadConfigPreset loads configuration with an explicit preset. An empty
// preset keeps the file's difficulty settings.
func LoadConfigPreset(preset config.DifficultyPreset) config.FruitCatchConfig {
	cfg, err := config.LoadFruitCatch(configPath)
	if err != nil {
		cfg = config.DefaultFruitCatchConfig()
	}
	if preset != "" {
		config.ApplyFruitCatchPreset(&cfg, preset)
	}
	return cfg.Normalize()
}

// ModeForID maps a registered game ID to its mode.
func ModeForID(id string) (Mode, bool) {
	switch id {
	case "fruitcatch":
		return ModeClassic, true
	case "fruitcatch_strict":
		return ModeStrict, true
	}
	return ModeClassic, false
}

// NewWithPreset creates the game registered as id with its own preset,
// independent of the CLI preset. Used by concurrent sessions.
func NewWithPreset(id string, preset config.DifficultyPreset) (*Game, error) {
	mode, ok := ModeForID(id)
	if !ok {
		return nil, fmt.Errorf("fruitcatch: unknown game %q", id)
	}
	return NewWithConfig(mode, LoadConfigPreset(preset)), nil
}

// Game implements registry.Game for Fruit Catch.
type Game struct {
	mode     Mode
	fixedCfg *config.FruitCatchConfig

	cfg     config.FruitCatchConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	spawner  *Spawner
	machine  *Machine
	resolver *Resolver
	rng      *rand.Rand
	basket   Basket

	observers []PhaseObserver

	tick      uint64
	paused    bool
	spin      Spin
	hasResult bool
	result    Segment
	bonus     int

	screenTooSmall bool
}

// New creates a classic Fruit Catch game.
func New() *Game {
	return &Game{mode: ModeClassic, logger: log.New(io.Discard)}
}

// NewStrict creates a game where only caught fruit fill the round quota.
func NewStrict() *Game {
	return &Game{mode: ModeStrict, logger: log.New(io.Discard)}
}

// NewWithConfig creates a game that uses cfg instead of loading files.
func NewWithConfig(mode Mode, cfg config.FruitCatchConfig) *Game {
	cfg = cfg.Normalize()
	return &Game{mode: mode, fixedCfg: &cfg, logger: log.New(io.Discard)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeStrict {
		return "fruitcatch_strict"
	}
	return "fruitcatch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeStrict {
		return "Fruit Catch (Strict)"
	}
	return "Fruit Catch"
}

// SetLogger sets the logger for phase changes and spins.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
	if g.machine != nil {
		g.machine.SetLogger(l)
	}
}

// OnPhaseChange registers an observer that survives Reset.
func (g *Game) OnPhaseChange(fn PhaseObserver) {
	g.observers = append(g.observers, fn)
	if g.machine != nil {
		g.machine.OnPhaseChange(fn)
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime

	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		g.cfg = LoadConfig()
	}

	mcfg := MachineConfigFrom(g.cfg)
	if g.mode == ModeStrict {
		mcfg.MissesCountTowardQuota = false
	}

	g.spawner = NewSpawner(SpawnerConfigFrom(g.cfg), float64(runtime.ScreenW), runtime.Seed)
	g.resolver = NewResolver(g.cfg.Wheel)
	g.rng = rand.New(rand.NewSource(runtime.Seed + 1)) //#nosec G404 -- game randomness, not security

	g.machine = NewMachine(mcfg)
	g.machine.SetLogger(g.logger)
	g.machine.OnPhaseChange(g.onPhaseChange)
	for _, obs := range g.observers {
		g.machine.OnPhaseChange(obs)
	}

	g.tick = 0
	g.paused = false
	g.spin = Spin{}
	g.hasResult = false
	g.result = Segment{}
	g.bonus = 0

	g.basket = Basket{
		Width:  g.cfg.Basket.Width,
		Height: g.cfg.Basket.Height,
	}
	g.layoutBasket()
	g.basket.X = (float64(runtime.ScreenW) - g.basket.Width) / 2
	g.basket = g.basket.ClampX(float64(runtime.ScreenW))

	g.spawner.ApplyDifficulty(g.machine.Difficulty())
	g.screenTooSmall = runtime.ScreenW < MinScreenW || runtime.ScreenH < MinScreenH
}

// Resize adapts to a new screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
	if g.spawner == nil {
		return
	}
	g.spawner.Resize(float64(w))
	g.layoutBasket()
	g.basket = g.basket.ClampX(float64(w))
}

func (g *Game) layoutBasket() {
	g.basket.Y = float64(g.runtime.ScreenH) - g.basket.Height - g.cfg.Basket.BottomMargin
}

// nowMs converts the tick counter to simulated milliseconds.
func (g *Game) nowMs() int64 {
	return int64(g.tick) * 1000 / int64(g.runtime.TickRate) //#nosec G115 -- tick count fits in int64
}

// onPhaseChange keeps the spawner in step with the machine: it runs only
// in PLAYING, and every new round or game starts with an empty field.
func (g *Game) onPhaseChange(from, to Phase) {
	now := g.nowMs()
	if to == PhasePlaying {
		g.spawner.ClearAll()
		g.spawner.ApplyDifficulty(g.machine.Difficulty())
		g.spawner.SetPaused(false, now)
		g.spawner.Arm(now)
		g.paused = false
		g.spin = Spin{}
		g.hasResult = false
		g.bonus = 0
	} else {
		g.spawner.SetPaused(true, now)
	}
	st := g.machine.State()
	g.logger.Info("phase", "from", from, "to", to, "round", st.Round, "score", st.Score, "lives", st.Lives)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.moveBasket(in)

	var res core.StepResult
	switch g.machine.Phase() {
	case PhasePlaying:
		if in.Has(core.ActionPause) {
			g.togglePause()
		}
		if !g.paused {
			res = g.stepPlaying()
		}

	case PhaseWheel:
		if !g.spin.Spinning() && in.Has(core.ActionConfirm) {
			g.startSpin(g.resolver.RandomImpulse(g.rng))
		}
		if g.spin.Spinning() && !g.spin.Step() {
			g.finishSpin()
		}

	case PhaseResult:
		if in.Has(core.ActionConfirm) {
			g.machine.AdvanceRound()
		} else if in.Has(core.ActionBack) {
			g.machine.Finish()
		}

	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.machine.ResetGame()
		}
	}

	res.State = g.State()
	return res
}

// stepPlaying runs one PLAYING tick: spawn and advance, classify, feed
// events to the machine, then remove caught and off-screen objects.
// Losing the last life wins over reaching the quota in the same tick.
func (g *Game) stepPlaying() core.StepResult {
	g.spawner.Tick(g.nowMs())

	height := float64(g.runtime.ScreenH)
	c := Classify(g.spawner.Snapshot(), g.basket, height)

	bombs := 0
	fruits := make([]Kind, 0, len(c.Caught))
	for _, o := range c.Caught {
		if o.Kind.IsBomb() {
			bombs++
			continue
		}
		fruits = append(fruits, o.Kind)
	}
	g.machine.OnTick(bombs, len(c.Missed), fruits)

	g.spawner.RemoveCaught(c.Caught)
	g.spawner.RemoveOffScreen(height)

	return core.StepResult{Caught: len(c.Caught), Missed: len(c.Missed)}
}

func (g *Game) moveBasket(in core.InputFrame) {
	if g.paused || g.machine.Phase() != PhasePlaying {
		return
	}
	if in.HasPointer {
		g.basket.X = in.PointerX - g.basket.Width/2
	}
	step := g.cfg.Basket.Step
	g.basket.X += float64(in.Count(core.ActionRight)-in.Count(core.ActionLeft)) * step
	g.basket = g.basket.ClampX(float64(g.runtime.ScreenW))
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.spawner.SetPaused(g.paused, g.nowMs())
}

// StartSpin spins the wheel with a given impulse. Ignored outside WHEEL or
// while the wheel is already turning.
func (g *Game) StartSpin(v0 float64) {
	if g.machine.Phase() != PhaseWheel || g.spin.Spinning() {
		return
	}
	g.startSpin(v0)
}

func (g *Game) startSpin(v0 float64) {
	g.spin = g.resolver.NewSpin(v0)
	g.logger.Debug("wheel spin", "impulse", v0)
	if !g.spin.Spinning() {
		g.finishSpin()
	}
}

func (g *Game) finishSpin() {
	g.result = g.resolver.Layout.SegmentAt(g.spin.Rotation)
	g.hasResult = true
	g.bonus = g.machine.ApplyMultiplier(g.result.Multiplier)
	g.logger.Info("wheel result", "segment", g.result.Label, "bonus", g.bonus)
	g.machine.MarkSpun()
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	g.Frame().Render(dst)
}

// State returns the platform-level game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	st := g.machine.State()
	return core.GameState{
		Score:    st.Score,
		Round:    st.Round,
		Lives:    st.Lives,
		Phase:    string(st.Phase),
		GameOver: st.Phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// RoundState returns the machine's round state.
func (g *Game) RoundState() RoundState {
	return g.machine.State()
}

// Basket returns the current basket.
func (g *Game) Basket() Basket {
	return g.basket
}

// Snapshot returns an immutable frame for the presentation layer.
func (g *Game) Snapshot() registry.Frame {
	return g.Frame()
}

func init() {
	registry.Register("fruitcatch", func() registry.Game {
		return New()
	})
	registry.Register("fruitcatch_strict", func() registry.Game {
		return NewStrict()
	})
}
