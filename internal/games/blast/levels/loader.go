// Package levels provides level loading functionality for Blast.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels/formats"
)

//go:embed data/*.json
var embedded embed.FS

// Level represents a complete level definition.
type Level struct {
	Name     string
	Layout   core.Snapshot
	FilePath string
}

// Number returns the level number.
func (l Level) Number() int {
	return l.Layout.Level
}

// Goals returns the obstacle codes the level must clear: the listed goals
// followed by every other obstacle code present in the grid.
func (l Level) Goals() []string {
	var out []string
	seen := make(map[core.ObstacleKind]bool)
	add := func(code string) {
		k, err := core.ParseGoalType(code)
		if err != nil || seen[k] {
			return
		}
		seen[k] = true
		out = append(out, k.Code())
	}
	for _, g := range l.Layout.Goals {
		add(g.Type)
	}
	for _, code := range l.Layout.Grid {
		if cell, err := core.ParseCell(code); err == nil && cell.Kind == core.KindObstacle {
			add(code)
		}
	}
	return out
}

// WithMoves returns a copy of the level with a different move budget.
func (l Level) WithMoves(moves int) Level {
	l.Layout.Moves = moves
	return l
}

// NewController creates an engine controller for this level.
func (l Level) NewController(opts core.Options) (*core.Controller, error) {
	return core.NewController(l.Layout, opts)
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS     fs.FS
	Root   string
	Logger *log.Logger
}

// NewLoader creates a loader over fsys rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// Embedded returns a loader over the built-in level pack.
func Embedded() *Loader {
	return NewLoader(embedded, "data")
}

// Dir returns a loader over a directory on disk.
func Dir(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// LoadAll recursively scans and loads all level files.
// Invalid files are logged and skipped. Returns levels sorted by number.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.logger().Warn("skipping level file", "path", p, "err", err)
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Number() < levels[j].Number()
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}

	return Level{
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		FilePath: p,
	}, nil
}

// LoadByNumber loads a specific level by number.
func (l *Loader) LoadByNumber(n int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.Number() == n {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: level not found: %d", n)
}

// Numbers returns all level numbers in sorted order.
func (l *Loader) Numbers() ([]int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	nums := make([]int, len(levels))
	for i, lvl := range levels {
		nums[i] = lvl.Number()
	}
	return nums, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".json":
		return formats.ParseJSON(data)
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
