package fruitcatch

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

// Phase is the coarse game phase.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseWheel    Phase = "wheel"
	PhaseResult   Phase = "result"
	PhaseGameOver Phase = "game_over"
)

// Machine events.
const (
	eventQuota  = "quota"
	eventLose   = "lose"
	eventSpun   = "spun"
	eventNext   = "next"
	eventFinish = "finish"
	eventReset  = "reset"
)

// RoundState is the authoritative score/lives/round record.
type RoundState struct {
	Score      int // Cumulative across the whole game
	RoundScore int // Reset every round
	Lives      int
	Round      int // 1-based
	CatchCount int // Toward the round quota
	Multiplier float64
	Phase      Phase
}

// PhaseObserver is notified after every phase transition.
type PhaseObserver func(from, to Phase)

// MachineConfig holds the rules of a game.
type MachineConfig struct {
	InitialLives   int
	FruitsPerRound int
	// MissesCountTowardQuota makes missed fruit advance the round quota
	// like caught fruit.
	MissesCountTowardQuota bool
	Table                  FruitTable
	Difficulty             *config.DifficultyManager
}

// MachineConfigFrom derives machine rules from game configuration.
func MachineConfigFrom(cfg config.FruitCatchConfig) MachineConfig {
	return MachineConfig{
		InitialLives:           cfg.Gameplay.InitialLives,
		FruitsPerRound:         cfg.Gameplay.FruitsPerRound,
		MissesCountTowardQuota: !cfg.Gameplay.StrictQuota,
		Table:                  FruitTableFromConfig(cfg.Fruits),
		Difficulty:             config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Machine is the round/game state machine. It is safe for concurrent use.
// Observers run after the internal lock is released, in registration order.
type Machine struct {
	mu         sync.Mutex
	cfg        MachineConfig
	fsm        *fsm.FSM
	state      RoundState
	difficulty config.RoundDifficulty

	obsMu     sync.Mutex
	observers []PhaseObserver

	logger *log.Logger
}

type transition struct {
	from, to Phase
}

// NewMachine creates a machine in PLAYING at round 1.
func NewMachine(cfg MachineConfig) *Machine {
	if cfg.InitialLives < 1 {
		cfg.InitialLives = 3
	}
	if cfg.FruitsPerRound < 1 {
		cfg.FruitsPerRound = 25
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = config.NewDifficultyManager(config.DefaultFruitCatchConfig().Difficulty)
	}

	m := &Machine{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	m.fsm = fsm.NewFSM(
		string(PhasePlaying),
		fsm.Events{
			{Name: eventQuota, Src: []string{string(PhasePlaying)}, Dst: string(PhaseWheel)},
			{Name: eventLose, Src: []string{string(PhasePlaying)}, Dst: string(PhaseGameOver)},
			{Name: eventSpun, Src: []string{string(PhaseWheel)}, Dst: string(PhaseResult)},
			{Name: eventNext, Src: []string{string(PhaseWheel), string(PhaseResult)}, Dst: string(PhasePlaying)},
			{Name: eventFinish, Src: []string{string(PhaseResult)}, Dst: string(PhaseGameOver)},
			{Name: eventReset, Src: []string{string(PhaseWheel), string(PhaseResult), string(PhaseGameOver)}, Dst: string(PhasePlaying)},
		},
		fsm.Callbacks{},
	)
	m.resetLocked()
	return m
}

// SetLogger sets the logger used for phase transitions.
func (m *Machine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	m.mu.Lock()
	m.logger = l
	m.mu.Unlock()
}

// OnPhaseChange registers an observer.
func (m *Machine) OnPhaseChange(fn PhaseObserver) {
	m.obsMu.Lock()
	defer m.obsMu.Unlock()
	m.observers = append(m.observers, fn)
}

// State returns a copy of the round state.
func (m *Machine) State() RoundState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Phase
}

// Difficulty returns the difficulty of the current round.
func (m *Machine) Difficulty() config.RoundDifficulty {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.difficulty
}

// FruitsPerRound returns the round quota.
func (m *Machine) FruitsPerRound() int {
	return m.cfg.FruitsPerRound
}

// OnFruitCaught scores a caught object. Bombs are routed to OnBombCaught.
// Ignored outside PLAYING.
func (m *Machine) OnFruitCaught(kind Kind) {
	if kind.IsBomb() {
		m.OnBombCaught()
		return
	}
	m.apply(func() []transition {
		if m.state.Phase != PhasePlaying {
			return nil
		}
		points := m.cfg.Table.Points(kind)
		m.state.RoundScore += points
		m.state.Score += points
		return m.countTowardQuotaLocked()
	})
}

// OnFruitMissed costs a life. When lives run out the game ends and the
// quota is not checked. Otherwise the miss counts toward the quota when
// MissesCountTowardQuota is set. Ignored outside PLAYING.
func (m *Machine) OnFruitMissed() {
	m.apply(func() []transition {
		if m.state.Phase != PhasePlaying {
			return nil
		}
		if trs := m.loseLifeLocked(); trs != nil {
			return trs
		}
		if !m.cfg.MissesCountTowardQuota {
			return nil
		}
		return m.countTowardQuotaLocked()
	})
}

// OnBombCaught costs a life and awards nothing. Bombs never count toward
// the quota. Ignored outside PLAYING.
func (m *Machine) OnBombCaught() {
	m.apply(func() []transition {
		if m.state.Phase != PhasePlaying {
			return nil
		}
		return m.loseLifeLocked()
	})
}

// OnTick applies one tick of classified events under a single lock.
// Bombs and misses cost lives first, and game over ends the tick. Every
// caught fruit is then scored before the quota is checked once.
// Ignored outside PLAYING.
func (m *Machine) OnTick(bombs, misses int, caught []Kind) {
	m.apply(func() []transition {
		if m.state.Phase != PhasePlaying {
			return nil
		}
		for range bombs {
			if trs := m.loseLifeLocked(); trs != nil {
				return trs
			}
		}
		for range misses {
			if trs := m.loseLifeLocked(); trs != nil {
				return trs
			}
			if m.cfg.MissesCountTowardQuota {
				m.state.CatchCount++
			}
		}
		for _, kind := range caught {
			if kind.IsBomb() {
				continue
			}
			points := m.cfg.Table.Points(kind)
			m.state.RoundScore += points
			m.state.Score += points
			m.state.CatchCount++
		}
		if m.state.CatchCount >= m.cfg.FruitsPerRound {
			return m.fireLocked(eventQuota)
		}
		return nil
	})
}

// ApplyMultiplier stores m and adds int(RoundScore*(m-1)) to Score, which
// is negative for m < 1. Negative multipliers are treated as zero. The
// phase is unchanged. Returns the change actually made to Score, which
// differs from the computed bonus when the score floor at zero applies.
func (m *Machine) ApplyMultiplier(mult float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mult < 0 {
		mult = 0
	}
	before := m.state.Score
	m.state.Multiplier = mult
	m.state.Score += int(float64(m.state.RoundScore) * (mult - 1))
	if m.state.Score < 0 {
		m.state.Score = 0
	}
	return m.state.Score - before
}

// MarkSpun moves WHEEL to RESULT once the wheel has stopped.
func (m *Machine) MarkSpun() {
	m.apply(func() []transition {
		return m.fireLocked(eventSpun)
	})
}

// AdvanceRound starts the next round: Round+1, RoundScore, CatchCount and
// Multiplier reset, difficulty recomputed, phase PLAYING. Score and lives
// carry over. Ignored in GAME_OVER.
func (m *Machine) AdvanceRound() {
	m.apply(func() []transition {
		if m.state.Phase == PhaseGameOver {
			return nil
		}
		m.state.Round++
		m.state.RoundScore = 0
		m.state.CatchCount = 0
		m.state.Multiplier = 1
		m.difficulty = m.cfg.Difficulty.ForRound(m.state.Round)
		if m.state.Phase == PhasePlaying {
			return nil
		}
		return m.fireLocked(eventNext)
	})
}

// Finish banks the score from RESULT and ends the game.
func (m *Machine) Finish() {
	m.apply(func() []transition {
		return m.fireLocked(eventFinish)
	})
}

// ResetGame starts a fresh game at round 1 in PLAYING. Observers are
// always notified, even when the phase was already PLAYING.
func (m *Machine) ResetGame() {
	m.apply(func() []transition {
		from := m.state.Phase
		m.resetLocked()
		return []transition{{from: from, to: PhasePlaying}}
	})
}

func (m *Machine) resetLocked() {
	if m.fsm.Current() != string(PhasePlaying) {
		if err := m.fsm.Event(context.Background(), eventReset); err != nil {
			m.fsm.SetState(string(PhasePlaying))
		}
	}
	m.state = RoundState{
		Lives:      m.cfg.InitialLives,
		Round:      1,
		Multiplier: 1,
		Phase:      PhasePlaying,
	}
	m.difficulty = m.cfg.Difficulty.ForRound(1)
}

func (m *Machine) loseLifeLocked() []transition {
	if m.state.Lives > 0 {
		m.state.Lives--
	}
	if m.state.Lives == 0 {
		return m.fireLocked(eventLose)
	}
	return nil
}

func (m *Machine) countTowardQuotaLocked() []transition {
	m.state.CatchCount++
	if m.state.CatchCount >= m.cfg.FruitsPerRound {
		return m.fireLocked(eventQuota)
	}
	return nil
}

func (m *Machine) fireLocked(event string) []transition {
	from := Phase(m.fsm.Current())
	if err := m.fsm.Event(context.Background(), event); err != nil {
		m.logger.Debug("transition rejected", "event", event, "phase", from, "err", err)
		return nil
	}
	to := Phase(m.fsm.Current())
	m.state.Phase = to
	return []transition{{from: from, to: to}}
}

func (m *Machine) apply(fn func() []transition) {
	m.mu.Lock()
	trs := fn()
	m.mu.Unlock()

	if len(trs) == 0 {
		return
	}
	m.obsMu.Lock()
	observers := make([]PhaseObserver, len(m.observers))
	copy(observers, m.observers)
	m.obsMu.Unlock()

	for _, tr := range trs {
		for _, obs := range observers {
			obs(tr.from, tr.to)
		}
	}
}
