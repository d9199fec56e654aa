package config

import "testing"

func TestDifficultyMoves(t *testing.T) {
	base := DefaultBlastConfig().Difficulty

	tests := []struct {
		name   string
		preset DifficultyPreset
		moves  int
		level  int
		want   int
	}{
		{"normal first level", DifficultyNormal, 20, 1, 20},
		{"easy adds a quarter", DifficultyEasy, 20, 1, 25},
		{"hard removes a fifth", DifficultyHard, 20, 1, 16},
		{"fixed ignores everything", DifficultyFixed, 20, 10, 20},
		{"normal last level", DifficultyNormal, 20, 10, 18},
		{"past max_at clamps", DifficultyNormal, 20, 30, 18},
		{"hard floor", DifficultyHard, 3, 10, 3},
		{"base below floor", DifficultyHard, 2, 10, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			cfg.Preset = tc.preset
			if got := NewDifficultyManager(cfg).Moves(tc.moves, tc.level); got != tc.want {
				t.Errorf("Moves(%d, %d) = %d, expected %d", tc.moves, tc.level, got, tc.want)
			}
		})
	}
}

func TestDifficultyProgress(t *testing.T) {
	cfg := DefaultBlastConfig().Difficulty
	d := NewDifficultyManager(cfg)

	if p := d.Progress(1); p != 0 {
		t.Errorf("first level progress = %v, expected 0", p)
	}
	if p := d.Progress(10); p != 1 {
		t.Errorf("max_at progress = %v, expected 1", p)
	}

	cfg.Progression.Type = "none"
	if p := NewDifficultyManager(cfg).Progress(10); p != 0 {
		t.Errorf("progression off should report 0, got %v", p)
	}
}

func TestDifficultyEmptyPreset(t *testing.T) {
	if p := NewDifficultyManager(DifficultyConfig{}).Preset(); p != DifficultyNormal {
		t.Errorf("empty preset should read as normal, got %q", p)
	}
}
