package config

import (
	_ "embed"
)

//go:embed defaults/fruitcatch.yaml
var defaultFruitCatchYAML []byte

// DefaultFruitCatchConfig returns the default Fruit Catch configuration.
func DefaultFruitCatchConfig() FruitCatchConfig {
	return FruitCatchConfig{
		Objects: FruitCatchObjects{
			Size:        1,
			BaseSpeed:   0.15,
			SpeedJitter: 0.075,
		},
		Basket: FruitCatchBasket{
			Width:        9,
			Height:       1,
			Step:         3,
			BottomMargin: 1,
		},
		Fruits: map[string]FruitSpec{
			"apple":      {Points: 10, Weight: 35},
			"orange":     {Points: 15, Weight: 25},
			"grapes":     {Points: 20, Weight: 16},
			"strawberry": {Points: 25, Weight: 8},
			"bomb":       {Points: 0, Weight: 8},
		},
		Gameplay: FruitCatchGameplay{
			InitialLives:   3,
			FruitsPerRound: 25,
			StrictQuota:    false,
		},
		Difficulty: DifficultyConfig{
			Enabled:             true,
			StartRound:          1,
			SpeedIncrement:      0.15,
			MaxSpeedMultiplier:  2.5,
			BombIntroRound:      1,
			BombBase:            1.0,
			BombIncrement:       1.5,
			MaxBombMultiplier:   10,
			MaxDifficultyRound:  10,
			BaseSpawnIntervalMs: 900,
			SpawnIntervalStepMs: 60,
			MinSpawnIntervalMs:  400,
		},
		Wheel: WheelConfig{
			Segments: []WheelSegmentSpec{
				{Multiplier: 1, Weight: 40, Label: "1x"},
				{Multiplier: 2, Weight: 30, Label: "2x"},
				{Multiplier: 3, Weight: 18, Label: "3x"},
				{Multiplier: 5, Weight: 10, Label: "5x"},
				{Multiplier: 0.5, Weight: 2, Label: "0.5x"},
			},
			Slots:      20,
			Seed:       42,
			Decay:      0.985,
			Threshold:  0.3,
			MinImpulse: 15,
			MaxImpulse: 25,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "fruitcatch", "fruitcatch_strict":
		return defaultFruitCatchYAML
	default:
		return nil
	}
}
