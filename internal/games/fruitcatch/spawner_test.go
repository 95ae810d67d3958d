package fruitcatch

import (
	"sync"
	"testing"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

func newTestSpawner(width float64) *Spawner {
	s := NewSpawner(SpawnerConfig{
		ObjectSize: 1,
		BaseSpeed:  0.5,
		Table:      DefaultFruitTable(),
	}, width, 1)
	s.ApplyDifficulty(config.RoundDifficulty{SpeedMultiplier: 1, BombChanceMultiplier: 1, SpawnIntervalMs: 100})
	return s
}

func TestSpawnerSpawnsAfterInterval(t *testing.T) {
	s := newTestSpawner(40)

	if s.Tick(100) {
		t.Fatal("spawned before interval elapsed")
	}
	if !s.Tick(101) {
		t.Fatal("expected spawn once interval elapsed")
	}

	objs := s.Snapshot()
	if len(objs) != 1 {
		t.Fatalf("Len = %d, expected 1", len(objs))
	}
	// Spawned at -size then advanced once.
	if objs[0].Y != -0.5 {
		t.Errorf("Y = %v, expected -0.5", objs[0].Y)
	}

	if s.Tick(150) {
		t.Error("spawned twice within one interval")
	}
	if !s.Tick(202) {
		t.Error("expected second spawn")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, expected 2", s.Len())
	}

	objs = s.Snapshot()
	if objs[0].ID == objs[1].ID {
		t.Error("spawned objects share an ID")
	}
}

func TestSpawnerXWithinScreen(t *testing.T) {
	s := newTestSpawner(40)
	now := int64(0)
	for range 200 {
		now += 101
		s.Tick(now)
	}
	for _, o := range s.Snapshot() {
		if o.X < 0 || o.X > 39 {
			t.Errorf("X = %v outside [0, 39]", o.X)
		}
		if o.Speed != 0.5 {
			t.Errorf("Speed = %v, expected base speed without jitter", o.Speed)
		}
	}
}

func TestSpawnerSpeedMultiplier(t *testing.T) {
	s := newTestSpawner(40)
	s.Tick(101)
	s.ApplyDifficulty(config.RoundDifficulty{SpeedMultiplier: 2, SpawnIntervalMs: 100})
	s.Tick(102)

	if y := s.Snapshot()[0].Y; y != 0.5 {
		t.Errorf("Y = %v, expected -0.5 + 0.5*2", y)
	}
}

func TestSpawnerPauseDoesNotFastForward(t *testing.T) {
	s := newTestSpawner(40)
	s.Tick(101)
	before := s.Snapshot()[0].Y

	s.SetPaused(true, 150)
	if !s.Paused() {
		t.Fatal("Paused() = false")
	}
	if s.Tick(1000) {
		t.Error("spawned while paused")
	}
	if y := s.Snapshot()[0].Y; y != before {
		t.Errorf("object moved while paused: %v -> %v", before, y)
	}

	s.SetPaused(false, 1000)
	if s.Tick(1050) {
		t.Error("resume replayed missed intervals")
	}
	if !s.Tick(1101) {
		t.Error("expected spawn one interval after resume")
	}
}

func TestSpawnerZeroWidthSkipsSpawn(t *testing.T) {
	s := newTestSpawner(0)
	if s.Tick(101) {
		t.Error("spawned on zero-width screen")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, expected 0", s.Len())
	}

	// Timer was still re-armed at 101.
	s.Resize(40)
	if s.Tick(150) {
		t.Error("spawned before re-armed interval elapsed")
	}
	if !s.Tick(202) {
		t.Error("expected spawn after resize")
	}
}

func TestSpawnerNoBombsWhenScaledToZero(t *testing.T) {
	s := newTestSpawner(40)
	s.ApplyDifficulty(config.RoundDifficulty{SpeedMultiplier: 0, BombChanceMultiplier: 0, SpawnIntervalMs: 0})
	for i := int64(1); i <= 500; i++ {
		s.Tick(i)
	}
	if s.Len() != 500 {
		t.Fatalf("Len = %d, expected 500", s.Len())
	}
	for _, o := range s.Snapshot() {
		if o.Kind == KindBomb {
			t.Fatal("bomb spawned with zero bomb multiplier")
		}
	}
}

func TestSpawnerAllZeroWeightsFallBackToApple(t *testing.T) {
	s := NewSpawner(SpawnerConfig{ObjectSize: 1, BaseSpeed: 1}, 40, 3)
	s.ApplyDifficulty(config.RoundDifficulty{SpeedMultiplier: 1, BombChanceMultiplier: 5, SpawnIntervalMs: 0})
	for i := int64(1); i <= 20; i++ {
		s.Tick(i)
	}
	for _, o := range s.Snapshot() {
		if o.Kind != KindApple {
			t.Fatalf("Kind = %s, expected apple fallback", o.Kind)
		}
	}
}

func TestSpawnerRemoveOffScreen(t *testing.T) {
	s := newTestSpawner(40)
	s.objects = append(s.objects,
		FallingObject{ID: 1, Y: 5, Size: 1},
		FallingObject{ID: 2, Y: 10, Size: 1},
		FallingObject{ID: 3, Y: 10.5, Size: 1},
	)

	if n := s.RemoveOffScreen(10); n != 1 {
		t.Errorf("removed %d, expected 1", n)
	}
	for _, o := range s.Snapshot() {
		if o.ID == 3 {
			t.Error("object below the screen was kept")
		}
	}
}

func TestSpawnerRemoveCaughtByID(t *testing.T) {
	s := newTestSpawner(40)
	s.objects = append(s.objects,
		FallingObject{ID: 1, X: 3, Y: 3, Size: 1},
		FallingObject{ID: 2, X: 3, Y: 3, Size: 1},
		FallingObject{ID: 3, X: 8, Y: 1, Size: 1},
	)

	s.RemoveCaught([]FallingObject{{ID: 2, X: 3, Y: 3, Size: 1}})

	objs := s.Snapshot()
	if len(objs) != 2 || objs[0].ID != 1 || objs[1].ID != 3 {
		t.Errorf("RemoveCaught left %v", objs)
	}

	s.ClearAll()
	if s.Len() != 0 {
		t.Error("ClearAll left objects")
	}
}

func TestSpawnerSnapshotIsCopy(t *testing.T) {
	s := newTestSpawner(40)
	s.Tick(101)

	snap := s.Snapshot()
	snap[0].Y = 999

	if s.Len() != 1 || s.Snapshot()[0].Y == 999 {
		t.Error("mutating the snapshot changed the spawner")
	}
}

func TestSpawnerConcurrentAccess(t *testing.T) {
	s := newTestSpawner(40)
	s.ApplyDifficulty(config.RoundDifficulty{SpeedMultiplier: 1, BombChanceMultiplier: 1, SpawnIntervalMs: 5})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := int64(1); i <= 2000; i++ {
			s.Tick(i)
			s.RemoveOffScreen(30)
		}
	}()
	go func() {
		defer wg.Done()
		for range 2000 {
			for _, o := range s.Snapshot() {
				_ = o.Y
			}
		}
	}()
	wg.Wait()
}

func TestSpawnerReseedDeterministic(t *testing.T) {
	a := newTestSpawner(40)
	b := newTestSpawner(40)
	a.Reseed(99)
	b.Reseed(99)
	for i := int64(1); i <= 30; i++ {
		a.Tick(i * 101)
		b.Tick(i * 101)
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	if len(sa) != len(sb) {
		t.Fatalf("lengths differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("object %d differs: %+v vs %+v", i, sa[i], sb[i])
		}
	}
}
