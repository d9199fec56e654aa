package core

import "fmt"

// Level-file cell codes outside the color and obstacle codes.
const (
	CodeEmpty       = "n"
	CodeBomb        = "t"
	CodeRandom      = "rand"
	CodeCrackedVase = "vd"
)

// Cell is a parsed level-file cell code.
type Cell struct {
	Empty    bool
	Kind     Kind
	Color    Color
	Random   bool // cube of a color drawn at load time
	Obstacle ObstacleKind
	Hits     int
}

// ParseCell decodes one level-file code.
func ParseCell(code string) (Cell, error) {
	switch code {
	case CodeEmpty:
		return Cell{Empty: true}, nil
	case CodeBomb:
		return Cell{Kind: KindBomb}, nil
	case CodeRandom:
		return Cell{Kind: KindCube, Random: true}, nil
	case CodeCrackedVase:
		return Cell{Kind: KindObstacle, Obstacle: ObstacleVase, Hits: 1}, nil
	}
	for c := Color(0); c < ColorCount; c++ {
		if code == c.Code() {
			return Cell{Kind: KindCube, Color: c}, nil
		}
	}
	if k, ok := obstacleByCode(code); ok {
		return Cell{Kind: KindObstacle, Obstacle: k, Hits: k.MaxHits()}, nil
	}
	return Cell{Empty: true}, fmt.Errorf("%w: %q", ErrUnknownCellCode, code)
}

// ParseGoalType decodes a goal type. Goal types are obstacle codes;
// the cracked vase code counts toward the vase goal.
func ParseGoalType(code string) (ObstacleKind, error) {
	if code == CodeCrackedVase {
		return ObstacleVase, nil
	}
	if k, ok := obstacleByCode(code); ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGoalType, code)
}

func obstacleByCode(code string) (ObstacleKind, bool) {
	for k := ObstacleKind(0); k < obstacleKindCount; k++ {
		if code == k.Code() {
			return k, true
		}
	}
	return 0, false
}

// CellCoord maps an index in a level-file grid (row-major, starting at the
// bottom-left cell) to a grid coordinate.
func CellCoord(i, w, h int) Coord {
	return C(i%w, h-1-i/w)
}

// CellIndex is the inverse of CellCoord.
func CellIndex(c Coord, w, h int) int {
	return (h-1-c.Y)*w + c.X
}

// Codes encodes g in level-file order.
func Codes(g *Grid) []string {
	out := make([]string, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			out[CellIndex(c, g.W, g.H)] = g.Get(c).Code()
		}
	}
	return out
}
