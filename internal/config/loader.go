package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "blast.yaml"

// Load loads the Blast configuration.
// Search order: customPath -> ~/.blast/configs/blast.yaml ->
// ./configs/blast.yaml -> embedded default -> hardcoded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (BlastConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlastConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlastConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, p := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := Parse(defaultBlastYAML); err == nil {
		return cfg, nil
	}
	return DefaultBlastConfig(), nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (BlastConfig, error) {
	cfg := DefaultBlastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values the engine cannot run with.
func (c BlastConfig) Validate() error {
	if c.Engine.BombThreshold < 2 {
		return fmt.Errorf("config: bomb_threshold must be at least 2, got %d", c.Engine.BombThreshold)
	}
	if _, err := core.ParseBombCellPolicy(c.Engine.BombCell); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return err
	}
	return nil
}

// Policy returns the engine rule variants. The config must be valid.
func (c BlastConfig) Policy() core.Policy {
	bombCell, _ := core.ParseBombCellPolicy(c.Engine.BombCell)
	return core.Policy{ObstaclesFall: c.Engine.ObstaclesFall, BombCell: bombCell}
}

// userConfigPath returns the user config file path, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blast", "configs", filename)
}

// ApplyPreset sets the difficulty preset.
func ApplyPreset(cfg *BlastConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}
