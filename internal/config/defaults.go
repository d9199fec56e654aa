package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the hardcoded configuration, used when the
// embedded YAML cannot be parsed.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Engine: EngineConfig{
			BombThreshold: 5,
			ObstaclesFall: true,
			BombCell:      "refill",
			PoolCapacity:  128,
		},
		Animation: AnimationConfig{
			Enabled:    true,
			ClearTicks: 6,
			FallTicks:  2,
			SpawnTicks: 3,
			ShakeTicks: 6,
		},
		Scoring: ScoringConfig{
			Cube:     10,
			Obstacle: 50,
			MoveLeft: 100,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				EasyBonus:     0.25,
				HardPenalty:   0.2,
				MoveReduction: 0.1,
				MinMoves:      3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlastYAML
}
