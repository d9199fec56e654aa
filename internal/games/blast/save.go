package blast

import (
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"gopkg.in/yaml.v3"
)

// Result is the outcome of a finished level.
type Result struct {
	Level     int
	Won       bool
	MovesLeft int
	Score     int
}

// Saver persists game progress. All methods are best-effort from the
// game's point of view: failures are logged and play continues.
type Saver interface {
	SaveGame(level int, payload string) error
	LoadGame(level int) (payload string, ok bool, err error)
	DeleteSave(level int) error
	SaveResult(r Result) error
	UnlockedLevel() (int, error)
	SetUnlockedLevel(n int) error
}

// savedGame is the payload stored for an unfinished level.
type savedGame struct {
	Score  int           `yaml:"score"`
	Layout core.Snapshot `yaml:"layout"`
}

// EncodeSave serializes a level in progress.
func EncodeSave(score int, layout core.Snapshot) (string, error) {
	data, err := yaml.Marshal(savedGame{Score: score, Layout: layout})
	if err != nil {
		return "", fmt.Errorf("blast: encode save: %w", err)
	}
	return string(data), nil
}

// DecodeSave parses a payload written by EncodeSave.
func DecodeSave(payload string) (score int, layout core.Snapshot, err error) {
	var sg savedGame
	if err := yaml.Unmarshal([]byte(payload), &sg); err != nil {
		return 0, core.Snapshot{}, fmt.Errorf("blast: decode save: %w", err)
	}
	if err := sg.Layout.Validate(); err != nil {
		return 0, core.Snapshot{}, fmt.Errorf("blast: decode save: %w", err)
	}
	return sg.Score, sg.Layout, nil
}
