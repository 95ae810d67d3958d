package config

import "math"

// RoundDifficulty holds the tuning values derived from a round number.
type RoundDifficulty struct {
	SpeedMultiplier      float64
	BombChanceMultiplier float64
	SpawnIntervalMs      int
}

// DifficultyManager calculates game parameters from the current round.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg.normalize(DefaultFruitCatchConfig().Difficulty)}
}

// SetStartRound overrides the difficulty round used for the first round.
func (d *DifficultyManager) SetStartRound(round int) {
	if round < 1 {
		round = 1
	}
	d.cfg.StartRound = round
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level maps a game round to the difficulty round it plays at.
// With progression disabled every round plays at the start round.
func (d *DifficultyManager) Level(round int) int {
	if round < 1 {
		round = 1
	}
	if !d.cfg.Enabled {
		return d.cfg.StartRound
	}
	return round + d.cfg.StartRound - 1
}

// ForRound returns the difficulty for a game round. It is a pure function
// of the round and the configuration.
func (d *DifficultyManager) ForRound(round int) RoundDifficulty {
	level := d.Level(round)
	effective := level
	if effective > d.cfg.MaxDifficultyRound {
		effective = d.cfg.MaxDifficultyRound
	}

	speed := math.Min(1.0+float64(effective-1)*d.cfg.SpeedIncrement, d.cfg.MaxSpeedMultiplier)

	bomb := 0.0
	if level >= d.cfg.BombIntroRound {
		bomb = math.Min(d.cfg.BombBase+float64(effective-d.cfg.BombIntroRound)*d.cfg.BombIncrement, d.cfg.MaxBombMultiplier)
		bomb = math.Max(bomb, 0)
	}

	interval := d.cfg.BaseSpawnIntervalMs - (effective-1)*d.cfg.SpawnIntervalStepMs
	if interval < d.cfg.MinSpawnIntervalMs {
		interval = d.cfg.MinSpawnIntervalMs
	}

	return RoundDifficulty{
		SpeedMultiplier:      speed,
		BombChanceMultiplier: bomb,
		SpawnIntervalMs:      interval,
	}
}
