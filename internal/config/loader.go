package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFruitCatch loads Fruit Catch configuration.
// Search order: customPath -> ~/.fruitcatch/configs/fruitcatch.yaml -> ./configs/fruitcatch.yaml -> embedded default
// Fields missing from a file keep their default values. The result is normalized.
func LoadFruitCatch(customPath string) (FruitCatchConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFruitCatchConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseFruitCatch(data)
		if err != nil {
			return DefaultFruitCatchConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("fruitcatch.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseFruitCatch(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "fruitcatch.yaml")); err == nil {
		if cfg, err := ParseFruitCatch(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseFruitCatch(defaultFruitCatchYAML)
	if err != nil {
		return DefaultFruitCatchConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseFruitCatch decodes YAML on top of the defaults and normalizes it.
func ParseFruitCatch(data []byte) (FruitCatchConfig, error) {
	cfg := DefaultFruitCatchConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.Normalize(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitcatch", "configs", filename)
}

// ApplyFruitCatchPreset modifies the config based on a difficulty preset.
func ApplyFruitCatchPreset(cfg *FruitCatchConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartRound = StartRoundForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.InitialLives = 5
		cfg.Basket.Width = 11
	case DifficultyHard:
		cfg.Gameplay.InitialLives = 2
		cfg.Basket.Width = 7
	}
}
