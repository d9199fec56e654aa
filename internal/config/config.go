// Package config provides YAML configuration for Blast.
package config

import "fmt"

// BlastConfig is the full game configuration.
type BlastConfig struct {
	Engine     EngineConfig     `yaml:"engine"`
	Animation  AnimationConfig  `yaml:"animation"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     LevelsConfig     `yaml:"levels"`
}

// EngineConfig holds the rule variants passed to the engine.
type EngineConfig struct {
	BombThreshold int    `yaml:"bomb_threshold"` // group size that leaves a bomb
	ObstaclesFall bool   `yaml:"obstacles_fall"` // stones and boxes fall like cubes
	BombCell      string `yaml:"bomb_cell"`      // "refill" or "hold"
	PoolCapacity  int    `yaml:"pool_capacity"`  // 0 disables block pooling
}

// AnimationConfig holds playback timing, in ticks.
type AnimationConfig struct {
	Enabled    bool `yaml:"enabled"`
	ClearTicks int  `yaml:"clear_ticks"` // removal flash
	FallTicks  int  `yaml:"fall_ticks"`  // per row of fall distance
	SpawnTicks int  `yaml:"spawn_ticks"` // per refill step
	ShakeTicks int  `yaml:"shake_ticks"`
}

// ScoringConfig holds the points table.
type ScoringConfig struct {
	Cube     int `yaml:"cube"`
	Obstacle int `yaml:"obstacle"`
	MoveLeft int `yaml:"move_left"` // bonus per unused move on a win
}

// DifficultyConfig controls the move budget.
type DifficultyConfig struct {
	Preset      DifficultyPreset  `yaml:"preset"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig tightens the budget as the campaign advances.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // level number at which the full reduction applies
}

// ScalingConfig is the size of the budget changes.
type ScalingConfig struct {
	EasyBonus     float64 `yaml:"easy_bonus"`     // fraction of moves added on easy
	HardPenalty   float64 `yaml:"hard_penalty"`   // fraction of moves removed on hard
	MoveReduction float64 `yaml:"move_reduction"` // fraction removed at MaxAt
	MinMoves      int     `yaml:"min_moves"`
}

// LevelsConfig points at an optional directory of custom levels.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // level files as written
)

// ParsePreset validates a preset name. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", s)
}
