package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "sliceit.yaml"

// LoadSlice loads the game configuration.
// Search order: customPath -> ~/.sliceit/configs/sliceit.yaml -> ./configs/sliceit.yaml -> embedded default.
// Values missing from a file keep their built-in defaults.
func LoadSlice(customPath string) (SliceConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSliceConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSlice(data)
		if err != nil {
			return DefaultSliceConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseSlice(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseSlice(defaultSliceYAML)
	if err != nil {
		return DefaultSliceConfig(), nil
	}
	return cfg, nil
}

// parseSlice decodes YAML on top of the built-in defaults and validates the result.
func parseSlice(data []byte) (SliceConfig, error) {
	cfg := DefaultSliceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c SliceConfig) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Spawn.BaseRate < 0 || c.Spawn.MaxRate <= 0 {
		return fmt.Errorf("spawn rates must be non-negative with a positive max")
	}
	if c.Blade.MinDistance < 0 {
		return fmt.Errorf("blade min_distance must be non-negative")
	}
	if len(c.Modes) == 0 {
		return fmt.Errorf("at least one mode must be configured")
	}
	for name, m := range c.Modes {
		if m.Lives == 0 {
			return fmt.Errorf("mode %s: lives must be positive or -1 for unlimited", name)
		}
		if m.SpawnMultiplier < 0 {
			return fmt.Errorf("mode %s: spawn_multiplier must be non-negative", name)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sliceit", "configs", filename)
}

// ApplySlicePreset modifies the config based on a difficulty preset.
func ApplySlicePreset(cfg *SliceConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Finite-life modes get a little more or less slack.
	for name, m := range cfg.Modes {
		if m.Lives == UnlimitedLives {
			continue
		}
		switch preset {
		case DifficultyEasy:
			m.Lives += 2
		case DifficultyHard:
			m.Lives = max(1, m.Lives-1)
		}
		cfg.Modes[name] = m
	}
}
