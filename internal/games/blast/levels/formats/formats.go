// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"gopkg.in/yaml.v3"
)

// FileLevel is the on-disk shape of a level. JSON files use the flat grid
// (row-major from the bottom-left cell); YAML files may use rows instead,
// one space-separated string of codes per row, top row first.
type FileLevel struct {
	Number int             `yaml:"level_number"`
	Name   string          `yaml:"name,omitempty"`
	Width  int             `yaml:"grid_width"`
	Height int             `yaml:"grid_height"`
	Moves  int             `yaml:"move_count"`
	Grid   []string        `yaml:"grid,omitempty"`
	Rows   []string        `yaml:"rows,omitempty"`
	Goals  []core.GoalSpec `yaml:"goals,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Name   string
	Layout core.Snapshot
}

// ParseJSON parses a JSON level file. JSON is read with the YAML decoder,
// which accepts it as a subset.
func ParseJSON(data []byte) (Level, error) {
	return parse(data, "json")
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	return parse(data, "yaml")
}

func parse(data []byte, format string) (Level, error) {
	var fl FileLevel
	if err := yaml.Unmarshal(data, &fl); err != nil {
		return Level{}, fmt.Errorf("%s unmarshal: %w", format, err)
	}

	grid := fl.Grid
	if len(grid) == 0 && len(fl.Rows) > 0 {
		var err error
		grid, fl.Width, fl.Height, err = flattenRows(fl.Rows, fl.Width, fl.Height)
		if err != nil {
			return Level{}, err
		}
	}

	layout := core.Snapshot{
		Level:  fl.Number,
		Width:  fl.Width,
		Height: fl.Height,
		Moves:  fl.Moves,
		Grid:   grid,
		Goals:  fl.Goals,
	}
	if err := layout.Validate(); err != nil {
		return Level{}, err
	}

	name := fl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", fl.Number)
	}
	return Level{Name: name, Layout: layout}, nil
}

// flattenRows converts top-first rows into the flat bottom-left grid.
// Zero width or height is inferred from the rows.
func flattenRows(rows []string, w, h int) ([]string, int, int, error) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = strings.Fields(r)
	}
	if h == 0 {
		h = len(cells)
	}
	if w == 0 && len(cells) > 0 {
		w = len(cells[0])
	}
	if h != len(cells) {
		return nil, 0, 0, fmt.Errorf("%w: %d rows for height %d", core.ErrLevelShape, len(cells), h)
	}

	grid := make([]string, 0, w*h)
	for y := h - 1; y >= 0; y-- {
		if len(cells[y]) != w {
			return nil, 0, 0, fmt.Errorf("%w: row %d has %d cells, want %d", core.ErrLevelShape, y, len(cells[y]), w)
		}
		grid = append(grid, cells[y]...)
	}
	return grid, w, h, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}
