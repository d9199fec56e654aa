package core

import (
	"fmt"
	"strings"
)

// Grid represents the board as a rectangular array of cells.
// Cells are stored in row-major order: index = y*W + x. A nil cell is empty.
// Grid mutators keep every block's Pos equal to the cell that holds it.
type Grid struct {
	W     int      // Number of columns
	H     int      // Number of rows
	Cells []*Block // Flat array of cells, length W*H
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]*Block, w*h),
	}
}

// Dims returns (rows, cols).
func (g *Grid) Dims() (rows, cols int) {
	return g.H, g.W
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// index converts a coordinate to a flat array index, panicking when outside.
func (g *Grid) index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.W, g.H))
	}
	return c.Y*g.W + c.X
}

// Get returns the block at c, or nil if the cell is empty.
func (g *Grid) Get(c Coord) *Block {
	return g.Cells[g.index(c)]
}

// Set installs b at c (nil clears the cell) and updates b.Pos.
// If b currently occupies another cell, that cell is cleared.
func (g *Grid) Set(c Coord, b *Block) {
	i := g.index(c)
	if b != nil {
		if g.InBounds(b.Pos) && b.Pos != c {
			if j := g.index(b.Pos); g.Cells[j] == b {
				g.Cells[j] = nil
			}
		}
		b.Pos = c
	}
	g.Cells[i] = b
}

// Clear empties the cell at c and returns the block that was there.
func (g *Grid) Clear(c Coord) *Block {
	i := g.index(c)
	b := g.Cells[i]
	g.Cells[i] = nil
	return b
}

// Move relocates the block at from to the empty cell to.
func (g *Grid) Move(from, to Coord) {
	b := g.Clear(from)
	g.Set(to, b)
}

// IsEmpty reports whether the cell at c is empty.
func (g *Grid) IsEmpty(c Coord) bool {
	return g.Get(c) == nil
}

// Blocks returns all blocks in row-major order.
func (g *Grid) Blocks() []*Block {
	blocks := make([]*Block, 0, len(g.Cells))
	for _, b := range g.Cells {
		if b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.Cells {
		if b != nil {
			n++
		}
	}
	return n
}

// Find returns the block with the given ID, or nil.
func (g *Grid) Find(id BlockID) *Block {
	for _, b := range g.Cells {
		if b != nil && b.ID == id {
			return b
		}
	}
	return nil
}

// Clone returns a deep copy of the grid and its blocks.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.W, g.H)
	for i, b := range g.Cells {
		if b != nil {
			cp := *b
			out.Cells[i] = &cp
		}
	}
	return out
}

// String renders the grid top row first, one character per cell:
// R G B Y cubes (lowercase when bomb tier), T bomb, S stone, X box,
// V vase, v cracked vase, '.' empty.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			sb.WriteRune(Glyph(g.Cells[y*g.W+x]))
		}
	}
	return sb.String()
}

// Glyph returns the single-character ASCII form of a cell.
func Glyph(b *Block) rune {
	if b == nil {
		return '.'
	}
	switch b.Kind {
	case KindCube:
		if b.Color >= ColorCount {
			return '?'
		}
		r := rune("RGBY"[b.Color])
		if b.Tier == TierBomb {
			r += 'a' - 'A'
		}
		return r
	case KindBomb:
		return 'T'
	case KindObstacle:
		switch b.Obstacle {
		case ObstacleStone:
			return 'S'
		case ObstacleBox:
			return 'X'
		case ObstacleVase:
			if b.Hits < ObstacleVase.MaxHits() {
				return 'v'
			}
			return 'V'
		}
	}
	return '?'
}
