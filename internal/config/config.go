// Package config provides YAML-based game configuration loading and
// round-based difficulty management for Fruit Catch.
package config

// FruitCatchConfig contains all configuration for the Fruit Catch game.
type FruitCatchConfig struct {
	Objects    FruitCatchObjects    `yaml:"objects"`
	Basket     FruitCatchBasket     `yaml:"basket"`
	Fruits     map[string]FruitSpec `yaml:"fruits"`
	Gameplay   FruitCatchGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig     `yaml:"difficulty"`
	Wheel      WheelConfig          `yaml:"wheel"`
}

// FruitCatchObjects defines falling object parameters.
// Speeds are in cells per tick before the round speed multiplier.
type FruitCatchObjects struct {
	Size        float64 `yaml:"size"`
	BaseSpeed   float64 `yaml:"base_speed"`
	SpeedJitter float64 `yaml:"speed_jitter"`
}

// FruitCatchBasket defines the player's basket.
type FruitCatchBasket struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Step         float64 `yaml:"step"`          // Cells moved per left/right press
	BottomMargin float64 `yaml:"bottom_margin"` // Rows kept free below the basket
}

// FruitSpec holds the score value and spawn weight of one object kind.
type FruitSpec struct {
	Points int `yaml:"points"`
	Weight int `yaml:"weight"`
}

// FruitCatchGameplay defines round and life rules.
type FruitCatchGameplay struct {
	InitialLives   int `yaml:"initial_lives"`
	FruitsPerRound int `yaml:"fruits_per_round"`
	// StrictQuota counts only caught fruit toward the round quota.
	// By default missed fruit count as well.
	StrictQuota bool `yaml:"strict_quota"`
}

// DifficultyConfig defines the per-round difficulty progression.
type DifficultyConfig struct {
	Enabled             bool    `yaml:"enabled"`
	StartRound          int     `yaml:"start_round"` // Difficulty round used for round 1
	SpeedIncrement      float64 `yaml:"speed_increment"`
	MaxSpeedMultiplier  float64 `yaml:"max_speed_multiplier"`
	BombIntroRound      int     `yaml:"bomb_intro_round"`
	BombBase            float64 `yaml:"bomb_base"`
	BombIncrement       float64 `yaml:"bomb_increment"`
	MaxBombMultiplier   float64 `yaml:"max_bomb_multiplier"`
	MaxDifficultyRound  int     `yaml:"max_difficulty_round"`
	BaseSpawnIntervalMs int     `yaml:"base_spawn_interval_ms"`
	SpawnIntervalStepMs int     `yaml:"spawn_interval_step_ms"`
	MinSpawnIntervalMs  int     `yaml:"min_spawn_interval_ms"`
}

// WheelConfig defines the reward wheel.
type WheelConfig struct {
	Segments   []WheelSegmentSpec `yaml:"segments"`
	Slots      int                `yaml:"slots"`
	Seed       int64              `yaml:"seed"`
	Decay      float64            `yaml:"decay"`
	Threshold  float64            `yaml:"threshold"`
	MinImpulse float64            `yaml:"min_impulse"`
	MaxImpulse float64            `yaml:"max_impulse"`
}

// WheelSegmentSpec is one multiplier on the wheel with its relative weight.
type WheelSegmentSpec struct {
	Multiplier float64 `yaml:"multiplier"`
	Weight     int     `yaml:"weight"`
	Label      string  `yaml:"label"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a name to a preset, reporting whether it is known.
func ParsePreset(name string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// StartRoundForPreset returns the difficulty round the first round plays at.
func StartRoundForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Normalize clamps every field into its valid range and fills missing
// values from the defaults. It returns the normalized copy.
func (c FruitCatchConfig) Normalize() FruitCatchConfig {
	def := DefaultFruitCatchConfig()

	if c.Objects.Size <= 0 {
		c.Objects.Size = def.Objects.Size
	}
	if c.Objects.BaseSpeed <= 0 {
		c.Objects.BaseSpeed = def.Objects.BaseSpeed
	}
	if c.Objects.SpeedJitter < 0 {
		c.Objects.SpeedJitter = 0
	}

	if c.Basket.Width <= 0 {
		c.Basket.Width = def.Basket.Width
	}
	if c.Basket.Height <= 0 {
		c.Basket.Height = def.Basket.Height
	}
	if c.Basket.Step <= 0 {
		c.Basket.Step = def.Basket.Step
	}
	if c.Basket.BottomMargin < 0 {
		c.Basket.BottomMargin = 0
	}

	fruits := make(map[string]FruitSpec, len(def.Fruits))
	for name, spec := range def.Fruits {
		if override, ok := c.Fruits[name]; ok {
			spec = override
		}
		if spec.Weight < 0 {
			spec.Weight = 0
		}
		if spec.Points < 0 {
			spec.Points = 0
		}
		if name == "bomb" {
			spec.Points = 0
		}
		fruits[name] = spec
	}
	c.Fruits = fruits

	if c.Gameplay.InitialLives < 1 {
		c.Gameplay.InitialLives = def.Gameplay.InitialLives
	}
	if c.Gameplay.FruitsPerRound < 1 {
		c.Gameplay.FruitsPerRound = def.Gameplay.FruitsPerRound
	}

	c.Difficulty = c.Difficulty.normalize(def.Difficulty)
	c.Wheel = c.Wheel.normalize(def.Wheel)
	return c
}

func (d DifficultyConfig) normalize(def DifficultyConfig) DifficultyConfig {
	if d.StartRound < 1 {
		d.StartRound = 1
	}
	if d.SpeedIncrement < 0 {
		d.SpeedIncrement = 0
	}
	if d.MaxSpeedMultiplier < 1 {
		d.MaxSpeedMultiplier = def.MaxSpeedMultiplier
	}
	if d.BombIntroRound < 1 {
		d.BombIntroRound = def.BombIntroRound
	}
	if d.BombBase < 0 {
		d.BombBase = 0
	}
	if d.BombIncrement < 0 {
		d.BombIncrement = 0
	}
	if d.MaxBombMultiplier < 0 {
		d.MaxBombMultiplier = 0
	}
	if d.MaxDifficultyRound < 1 {
		d.MaxDifficultyRound = def.MaxDifficultyRound
	}
	if d.MinSpawnIntervalMs < 1 {
		d.MinSpawnIntervalMs = def.MinSpawnIntervalMs
	}
	if d.BaseSpawnIntervalMs < d.MinSpawnIntervalMs {
		d.BaseSpawnIntervalMs = d.MinSpawnIntervalMs
	}
	if d.SpawnIntervalStepMs < 0 {
		d.SpawnIntervalStepMs = 0
	}
	return d
}

func (w WheelConfig) normalize(def WheelConfig) WheelConfig {
	segments := make([]WheelSegmentSpec, 0, len(w.Segments))
	for _, s := range w.Segments {
		if s.Multiplier < 0 {
			s.Multiplier = 0
		}
		if s.Weight < 0 {
			s.Weight = 0
		}
		segments = append(segments, s)
	}
	if len(segments) == 0 {
		segments = append(segments, def.Segments...)
	}
	w.Segments = segments

	if w.Slots < 1 {
		w.Slots = def.Slots
	}
	if w.Decay <= 0 || w.Decay >= 1 {
		w.Decay = def.Decay
	}
	if w.Threshold <= 0 {
		w.Threshold = def.Threshold
	}
	if w.MinImpulse <= 0 {
		w.MinImpulse = def.MinImpulse
	}
	if w.MaxImpulse < w.MinImpulse {
		w.MaxImpulse = w.MinImpulse
	}
	return w
}
