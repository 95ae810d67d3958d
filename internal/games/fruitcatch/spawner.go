package fruitcatch

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/fruit-catch/internal/config"
	"github.com/vovakirdan/fruit-catch/internal/weighted"
)

// SpawnerConfig holds the static parameters of a Spawner.
type SpawnerConfig struct {
	ObjectSize  float64
	BaseSpeed   float64 // Cells per tick before the speed multiplier
	SpeedJitter float64 // Upper bound of the uniform speed bonus
	Table       FruitTable
}

// SpawnerConfigFrom derives spawner parameters from game configuration.
func SpawnerConfigFrom(cfg config.FruitCatchConfig) SpawnerConfig {
	return SpawnerConfig{
		ObjectSize:  cfg.Objects.Size,
		BaseSpeed:   cfg.Objects.BaseSpeed,
		SpeedJitter: cfg.Objects.SpeedJitter,
		Table:       FruitTableFromConfig(cfg.Fruits),
	}
}

// Spawner owns the set of falling objects. Every method is safe for
// concurrent use; readers get copies, never the live slice.
type Spawner struct {
	mu sync.Mutex

	cfg     SpawnerConfig
	rng     *rand.Rand
	objects []FallingObject
	nextID  uint64

	lastSpawnMs     int64
	spawnIntervalMs int
	speedMultiplier float64
	bombMultiplier  float64
	paused          bool
	screenWidth     float64
}

// NewSpawner creates a spawner for a screen of the given width.
func NewSpawner(cfg SpawnerConfig, screenWidth float64, seed int64) *Spawner {
	if cfg.ObjectSize <= 0 {
		cfg.ObjectSize = 1
	}
	return &Spawner{
		cfg:             cfg,
		rng:             rand.New(rand.NewSource(seed)), //#nosec G404 -- game randomness, not security
		objects:         make([]FallingObject, 0, 32),
		spawnIntervalMs: 1000,
		speedMultiplier: 1,
		bombMultiplier:  1,
		screenWidth:     screenWidth,
	}
}

// Tick spawns at most one object when the spawn interval has elapsed since
// the last spawn, then advances every object by its speed times the speed
// multiplier. Does nothing while paused. Reports whether an object spawned.
func (s *Spawner) Tick(nowMs int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return false
	}

	spawned := false
	if nowMs-s.lastSpawnMs > int64(s.spawnIntervalMs) {
		s.lastSpawnMs = nowMs
		if s.screenWidth > 0 {
			s.spawnLocked()
			spawned = true
		}
	}

	for i := range s.objects {
		s.objects[i].Y += s.objects[i].Speed * s.speedMultiplier
	}
	return spawned
}

func (s *Spawner) spawnLocked() {
	kind := weighted.Select(s.rng, s.cfg.Table.Entries(s.bombMultiplier), KindApple)

	size := s.cfg.ObjectSize
	x := 0.0
	if span := s.screenWidth - size; span > 0 {
		x = s.rng.Float64() * span
	}
	speed := s.cfg.BaseSpeed
	if s.cfg.SpeedJitter > 0 {
		speed += s.rng.Float64() * s.cfg.SpeedJitter
	}

	s.nextID++
	s.objects = append(s.objects, FallingObject{
		ID:    s.nextID,
		Kind:  kind,
		X:     x,
		Y:     -size,
		Speed: speed,
		Size:  size,
	})
}

// RemoveOffScreen drops objects whose top edge is below screenHeight and
// returns how many were removed. Callers score misses before calling it.
func (s *Spawner) RemoveOffScreen(screenHeight float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.objects[:0]
	removed := 0
	for _, o := range s.objects {
		if o.Y > screenHeight {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.objects = kept
	return removed
}

// RemoveCaught removes the given objects by ID.
func (s *Spawner) RemoveCaught(caught []FallingObject) {
	if len(caught) == 0 {
		return
	}
	ids := make(map[uint64]struct{}, len(caught))
	for _, o := range caught {
		ids[o.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.objects[:0]
	for _, o := range s.objects {
		if _, ok := ids[o.ID]; ok {
			continue
		}
		kept = append(kept, o)
	}
	s.objects = kept
}

// ClearAll empties the active set.
func (s *Spawner) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = s.objects[:0]
}

// SetPaused stops or resumes spawning and movement. Resuming re-arms the
// spawn timer at nowMs so intervals missed while paused are not replayed.
func (s *Spawner) SetPaused(paused bool, nowMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused && !paused {
		s.lastSpawnMs = nowMs
	}
	s.paused = paused
}

// Paused reports whether the spawner is paused.
func (s *Spawner) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Arm sets the last spawn time, delaying the next spawn by one interval.
func (s *Spawner) Arm(nowMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSpawnMs = nowMs
}

// ApplyDifficulty updates spawn rate, speed and bomb chance.
func (s *Spawner) ApplyDifficulty(d config.RoundDifficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawnIntervalMs = max(d.SpawnIntervalMs, 0)
	s.speedMultiplier = max(d.SpeedMultiplier, 0)
	s.bombMultiplier = max(d.BombChanceMultiplier, 0)
}

// Resize changes the screen width used for new spawns.
func (s *Spawner) Resize(screenWidth float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screenWidth = screenWidth
}

// Reseed resets the random source.
func (s *Spawner) Reseed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- game randomness, not security
}

// Snapshot returns a copy of the active objects.
func (s *Spawner) Snapshot() []FallingObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FallingObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of active objects.
func (s *Spawner) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
