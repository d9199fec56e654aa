package config

import "math"

// DifficultyManager derives a level's move budget from the preset and the
// campaign position.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Preset returns the active preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	if d.cfg.Preset == "" {
		return DifficultyNormal
	}
	return d.cfg.Preset
}

// Progress returns how far into the progression level n is, in [0, 1].
func (d *DifficultyManager) Progress(level int) float64 {
	if d.cfg.Progression.Type != "level" || d.Preset() == DifficultyFixed {
		return 0
	}
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		return 1
	}
	return clampF(float64(level-1)/(maxAt-1), 0, 1)
}

// Moves returns the adjusted move budget for a level with base moves.
// The fixed preset returns base unchanged; other presets never go below
// the configured minimum or base, whichever is smaller.
func (d *DifficultyManager) Moves(base, level int) int {
	if d.Preset() == DifficultyFixed {
		return base
	}

	factor := 1.0
	switch d.Preset() {
	case DifficultyEasy:
		factor += d.cfg.Scaling.EasyBonus
	case DifficultyHard:
		factor -= d.cfg.Scaling.HardPenalty
	}
	factor -= d.Progress(level) * d.cfg.Scaling.MoveReduction

	moves := int(math.Round(float64(base) * factor))
	floor := d.cfg.Scaling.MinMoves
	if base < floor {
		floor = base
	}
	if floor < 1 {
		floor = 1
	}
	if moves < floor {
		moves = floor
	}
	return moves
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
