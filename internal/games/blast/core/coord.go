package core

import (
	"fmt"
	"sort"
)

// Coord represents a cell on the grid.
// X is the column (increasing to the right), Y is the row (increasing downward).
// Row 0 is the top row; gravity pulls blocks toward larger Y.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders coordinates row-major (top row first, then left to right).
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Neighbors4 returns the orthogonal neighbors in up, right, down, left order.
// The result may contain coordinates outside the grid.
func (c Coord) Neighbors4() [4]Coord {
	return [4]Coord{
		c.Add(0, -1),
		c.Add(1, 0),
		c.Add(0, 1),
		c.Add(-1, 0),
	}
}

// Square returns every coordinate within Chebyshev distance r of c,
// row-major, including c itself. Coordinates may lie outside the grid.
func (c Coord) Square(r int) []Coord {
	out := make([]Coord, 0, (2*r+1)*(2*r+1))
	for y := c.Y - r; y <= c.Y+r; y++ {
		for x := c.X - r; x <= c.X+r; x++ {
			out = append(out, C(x, y))
		}
	}
	return out
}

// sortedCoords returns a row-major sorted copy of cs.
func sortedCoords(cs []Coord) []Coord {
	out := append([]Coord(nil), cs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
