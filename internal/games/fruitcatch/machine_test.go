package fruitcatch

import (
	"testing"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

type transitionLog struct {
	got []transition
}

func (l *transitionLog) observe(from, to Phase) {
	l.got = append(l.got, transition{from: from, to: to})
}

func newTestMachine(quota int, missesCount bool) (*Machine, *transitionLog) {
	m := NewMachine(MachineConfig{
		InitialLives:           3,
		FruitsPerRound:         quota,
		MissesCountTowardQuota: missesCount,
		Table:                  DefaultFruitTable(),
	})
	log := &transitionLog{}
	m.OnPhaseChange(log.observe)
	return m, log
}

func TestMachineInitialState(t *testing.T) {
	m, _ := newTestMachine(25, true)
	st := m.State()
	if st.Phase != PhasePlaying || st.Round != 1 || st.Lives != 3 || st.Multiplier != 1 {
		t.Errorf("unexpected initial state %+v", st)
	}
	if st.Score != 0 || st.RoundScore != 0 || st.CatchCount != 0 {
		t.Errorf("expected zero scores, got %+v", st)
	}
}

func TestMachineCatchAppleAddsPoints(t *testing.T) {
	m, _ := newTestMachine(25, true)
	m.OnFruitCaught(KindApple)

	st := m.State()
	if st.Score != 10 || st.RoundScore != 10 {
		t.Errorf("Score/RoundScore = %d/%d, expected 10/10", st.Score, st.RoundScore)
	}
	if st.Lives != 3 {
		t.Errorf("Lives = %d, expected unchanged 3", st.Lives)
	}
	if st.CatchCount != 1 {
		t.Errorf("CatchCount = %d, expected 1", st.CatchCount)
	}
}

func TestMachineQuotaMovesToWheelOnce(t *testing.T) {
	for _, missesCount := range []bool{true, false} {
		m, log := newTestMachine(5, missesCount)

		for i := range 4 {
			m.OnFruitCaught(KindOrange)
			if m.Phase() != PhasePlaying {
				t.Fatalf("left PLAYING after %d catches", i+1)
			}
		}
		m.OnFruitCaught(KindOrange)
		if m.Phase() != PhaseWheel {
			t.Fatalf("phase = %s after quota, expected wheel", m.Phase())
		}

		// Further events are ignored outside PLAYING.
		m.OnFruitCaught(KindOrange)
		m.OnFruitMissed()
		m.OnBombCaught()

		st := m.State()
		if st.Score != 75 || st.Lives != 3 || st.CatchCount != 5 {
			t.Errorf("state changed after quota: %+v", st)
		}
		if len(log.got) != 1 || log.got[0] != (transition{PhasePlaying, PhaseWheel}) {
			t.Errorf("transitions = %v, expected one playing->wheel", log.got)
		}
	}
}

func TestMachineThreeMissesEndGame(t *testing.T) {
	m, log := newTestMachine(25, true)

	m.OnFruitMissed()
	m.OnFruitMissed()
	if m.State().Lives != 1 || m.Phase() != PhasePlaying {
		t.Fatalf("unexpected state after two misses: %+v", m.State())
	}
	m.OnFruitMissed()

	st := m.State()
	if st.Lives != 0 || st.Phase != PhaseGameOver {
		t.Errorf("expected game over with 0 lives, got %+v", st)
	}

	m.OnFruitMissed()
	if m.State().Lives != 0 {
		t.Errorf("Lives = %d after fourth miss, expected 0", m.State().Lives)
	}
	if len(log.got) != 1 || log.got[0].to != PhaseGameOver {
		t.Errorf("transitions = %v", log.got)
	}
}

func TestMachineBombsEndGame(t *testing.T) {
	m, _ := newTestMachine(25, true)
	m.OnFruitCaught(KindApple)

	m.OnBombCaught()
	st := m.State()
	if st.Lives != 2 || st.Score != 10 || st.CatchCount != 1 {
		t.Errorf("bomb should cost a life only, got %+v", st)
	}

	m.OnFruitCaught(KindBomb) // routed to OnBombCaught
	m.OnBombCaught()
	if m.Phase() != PhaseGameOver || m.State().Lives != 0 {
		t.Errorf("expected game over, got %+v", m.State())
	}
}

func TestMachineGameOverBeatsQuota(t *testing.T) {
	m, log := newTestMachine(3, true)
	m.OnFruitCaught(KindApple)
	m.OnFruitCaught(KindApple)
	m.OnBombCaught()
	m.OnBombCaught()

	// This miss empties lives and would also fill the quota.
	m.OnFruitMissed()

	st := m.State()
	if st.Phase != PhaseGameOver {
		t.Errorf("phase = %s, expected game over to take precedence", st.Phase)
	}
	if st.CatchCount != 2 {
		t.Errorf("CatchCount = %d, expected the fatal miss not to count", st.CatchCount)
	}
	for _, tr := range log.got {
		if tr.to == PhaseWheel {
			t.Error("machine visited the wheel on a fatal miss")
		}
	}
}

func TestMachineMissesCountTowardQuota(t *testing.T) {
	m, _ := newTestMachine(2, true)
	m.OnFruitMissed()
	if st := m.State(); st.CatchCount != 1 || st.Lives != 2 {
		t.Fatalf("after miss: %+v", st)
	}
	m.OnFruitCaught(KindApple)
	if m.Phase() != PhaseWheel {
		t.Errorf("phase = %s, expected wheel after miss + catch", m.Phase())
	}
}

func TestMachineStrictQuotaIgnoresMisses(t *testing.T) {
	m, _ := newTestMachine(2, false)
	m.OnFruitMissed()
	m.OnFruitMissed()
	if st := m.State(); st.CatchCount != 0 || st.Lives != 1 || st.Phase != PhasePlaying {
		t.Fatalf("after misses: %+v", st)
	}
	m.OnFruitCaught(KindApple)
	if m.Phase() != PhasePlaying {
		t.Fatal("left PLAYING before quota")
	}
	m.OnFruitCaught(KindApple)
	if m.Phase() != PhaseWheel {
		t.Errorf("phase = %s, expected wheel after two catches", m.Phase())
	}
}

func TestMachineApplyMultiplier(t *testing.T) {
	tests := []struct {
		mult     float64
		expected int
		bonus    int
	}{
		{2.0, 200, 100},
		{1.0, 100, 0},
		{0.5, 50, -50},
		{3.0, 300, 200},
		{-1, 0, -100}, // clamped to 0
	}

	for _, tt := range tests {
		m, log := newTestMachine(25, true)
		for range 10 {
			m.OnFruitCaught(KindApple)
		}

		bonus := m.ApplyMultiplier(tt.mult)
		st := m.State()
		if st.Score != tt.expected || bonus != tt.bonus {
			t.Errorf("ApplyMultiplier(%v): score %d bonus %d, expected %d/%d", tt.mult, st.Score, bonus, tt.expected, tt.bonus)
		}
		if st.Phase != PhasePlaying || len(log.got) != 0 {
			t.Errorf("ApplyMultiplier(%v) changed phase", tt.mult)
		}
		if st.RoundScore != 100 {
			t.Errorf("RoundScore = %d, expected unchanged", st.RoundScore)
		}
	}
}

func TestMachineApplyMultiplierReturnsAppliedChange(t *testing.T) {
	m, _ := newTestMachine(25, true)
	for range 10 {
		m.OnFruitCaught(KindApple)
	}

	if got := m.ApplyMultiplier(0); got != -100 {
		t.Errorf("first ApplyMultiplier(0) = %d, expected -100", got)
	}
	// The score is already at the floor, so nothing more is taken.
	if got := m.ApplyMultiplier(0); got != 0 {
		t.Errorf("second ApplyMultiplier(0) = %d, expected 0", got)
	}
	if st := m.State(); st.Score != 0 {
		t.Errorf("Score = %d, expected 0", st.Score)
	}
}

func TestMachineOnTick(t *testing.T) {
	tests := []struct {
		name       string
		lives      int
		quota      int
		bombs      int
		misses     int
		caught     []Kind
		phase      Phase
		score      int
		lives2     int
		catchCount int
	}{
		{"catches only", 3, 5, 0, 0, []Kind{KindApple, KindOrange}, PhasePlaying, 25, 3, 2},
		{"miss fills quota, catch still scores", 3, 2, 0, 1, []Kind{KindStrawberry}, PhaseWheel, 25, 2, 2},
		{"last life lost beats quota", 1, 1, 0, 1, []Kind{KindApple}, PhaseGameOver, 0, 0, 0},
		{"bomb ends game before catches", 1, 1, 1, 0, []Kind{KindGrapes}, PhaseGameOver, 0, 0, 0},
		{"bombs in caught are skipped", 3, 5, 1, 0, []Kind{KindBomb, KindApple}, PhasePlaying, 10, 2, 1},
	}

	for _, tt := range tests {
		m := NewMachine(MachineConfig{
			InitialLives:           tt.lives,
			FruitsPerRound:         tt.quota,
			MissesCountTowardQuota: true,
			Table:                  DefaultFruitTable(),
		})
		log := &transitionLog{}
		m.OnPhaseChange(log.observe)

		m.OnTick(tt.bombs, tt.misses, tt.caught)

		st := m.State()
		if st.Phase != tt.phase || st.Score != tt.score || st.Lives != tt.lives2 || st.CatchCount != tt.catchCount {
			t.Errorf("%s: got phase %s score %d lives %d count %d, expected %s/%d/%d/%d",
				tt.name, st.Phase, st.Score, st.Lives, st.CatchCount, tt.phase, tt.score, tt.lives2, tt.catchCount)
		}
		if tt.phase != PhasePlaying && len(log.got) != 1 {
			t.Errorf("%s: %d transitions, expected 1", tt.name, len(log.got))
		}
	}
}

func TestMachineAdvanceRound(t *testing.T) {
	m, log := newTestMachine(2, true)
	m.OnFruitCaught(KindGrapes)
	m.OnFruitMissed()
	m.ApplyMultiplier(2)
	m.MarkSpun()
	if m.Phase() != PhaseResult {
		t.Fatalf("phase = %s, expected result", m.Phase())
	}
	before := m.State()

	m.AdvanceRound()

	st := m.State()
	if st.Round != before.Round+1 {
		t.Errorf("Round = %d, expected %d", st.Round, before.Round+1)
	}
	if st.RoundScore != 0 || st.CatchCount != 0 || st.Multiplier != 1 {
		t.Errorf("round counters not reset: %+v", st)
	}
	if st.Score != before.Score || st.Lives != before.Lives {
		t.Errorf("score/lives changed: %+v vs %+v", st, before)
	}
	if st.Phase != PhasePlaying {
		t.Errorf("phase = %s, expected playing", st.Phase)
	}

	expectedDiff := config.NewDifficultyManager(config.DefaultFruitCatchConfig().Difficulty).ForRound(2)
	if m.Difficulty() != expectedDiff {
		t.Errorf("Difficulty() = %+v, expected %+v", m.Difficulty(), expectedDiff)
	}

	expected := []transition{
		{PhasePlaying, PhaseWheel},
		{PhaseWheel, PhaseResult},
		{PhaseResult, PhasePlaying},
	}
	if len(log.got) != len(expected) {
		t.Fatalf("transitions = %v, expected %v", log.got, expected)
	}
	for i := range expected {
		if log.got[i] != expected[i] {
			t.Errorf("transition %d = %v, expected %v", i, log.got[i], expected[i])
		}
	}
}

func TestMachineAdvanceRoundIgnoredAfterGameOver(t *testing.T) {
	m, _ := newTestMachine(25, true)
	for range 3 {
		m.OnBombCaught()
	}
	m.AdvanceRound()
	if st := m.State(); st.Round != 1 || st.Phase != PhaseGameOver {
		t.Errorf("AdvanceRound changed a finished game: %+v", st)
	}
}

func TestMachineFinishFromResult(t *testing.T) {
	m, log := newTestMachine(1, true)

	m.Finish()
	if m.Phase() != PhasePlaying {
		t.Fatal("Finish should be ignored while playing")
	}

	m.OnFruitCaught(KindApple)
	m.MarkSpun()
	m.Finish()
	if m.Phase() != PhaseGameOver {
		t.Errorf("phase = %s, expected game over", m.Phase())
	}
	if last := log.got[len(log.got)-1]; last != (transition{PhaseResult, PhaseGameOver}) {
		t.Errorf("last transition = %v", last)
	}
}

func TestMachineMarkSpunOnlyFromWheel(t *testing.T) {
	m, log := newTestMachine(25, true)
	m.MarkSpun()
	if m.Phase() != PhasePlaying || len(log.got) != 0 {
		t.Error("MarkSpun should be ignored outside the wheel")
	}
}

func TestMachineResetGame(t *testing.T) {
	m, log := newTestMachine(2, true)
	m.OnFruitCaught(KindStrawberry)
	for range 3 {
		m.OnBombCaught()
	}
	m.ResetGame()

	st := m.State()
	expected := RoundState{Lives: 3, Round: 1, Multiplier: 1, Phase: PhasePlaying}
	if st != expected {
		t.Errorf("state after reset = %+v, expected %+v", st, expected)
	}
	if last := log.got[len(log.got)-1]; last != (transition{PhaseGameOver, PhasePlaying}) {
		t.Errorf("last transition = %v", last)
	}

	// Reset while playing still notifies observers.
	n := len(log.got)
	m.ResetGame()
	if len(log.got) != n+1 || log.got[n] != (transition{PhasePlaying, PhasePlaying}) {
		t.Errorf("reset from playing transitions = %v", log.got[n:])
	}

	// The machine is fully usable after reset.
	m.OnFruitCaught(KindApple)
	m.OnFruitCaught(KindApple)
	if m.Phase() != PhaseWheel {
		t.Errorf("phase = %s after reset and quota, expected wheel", m.Phase())
	}
}

func TestMachineObserversInOrder(t *testing.T) {
	m, _ := newTestMachine(1, true)
	var order []string
	m.OnPhaseChange(func(from, to Phase) { order = append(order, "first") })
	m.OnPhaseChange(func(from, to Phase) {
		// Observers may read state without deadlocking.
		_ = m.State()
		order = append(order, "second")
	})

	m.OnFruitCaught(KindApple)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("observer order = %v", order)
	}
}
