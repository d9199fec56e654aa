// Package core provides the match-and-cascade engine for the Blast puzzle.
// This package is UI-agnostic and deterministic for a given seed: it consumes
// taps and returns ordered change records for a presentation layer to play back.
package core

// BlockID identifies a block for its whole lifetime on the grid.
type BlockID int

// Kind is the variant tag of a Block.
type Kind uint8

const (
	KindCube Kind = iota
	KindObstacle
	KindBomb
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindObstacle:
		return "obstacle"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Color is the color of a cube.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Code returns the level-file code of the color.
func (c Color) Code() string {
	switch c {
	case ColorRed:
		return "r"
	case ColorGreen:
		return "g"
	case ColorBlue:
		return "b"
	case ColorYellow:
		return "y"
	default:
		return "?"
	}
}

// Tier marks whether a cube currently belongs to a bomb-sized group.
type Tier uint8

const (
	TierNormal Tier = iota
	TierBomb
)

// ObstacleKind is the type of an obstacle block.
type ObstacleKind uint8

const (
	ObstacleStone ObstacleKind = iota
	ObstacleBox
	ObstacleVase
	obstacleKindCount
)

// String returns the string representation of an obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleStone:
		return "stone"
	case ObstacleBox:
		return "box"
	case ObstacleVase:
		return "vase"
	default:
		return "unknown"
	}
}

// Code returns the level-file code of the obstacle kind.
func (k ObstacleKind) Code() string {
	switch k {
	case ObstacleStone:
		return "s"
	case ObstacleBox:
		return "bo"
	case ObstacleVase:
		return "v"
	default:
		return "?"
	}
}

// Valid reports whether k is one of the known obstacle kinds.
func (k ObstacleKind) Valid() bool {
	return k < obstacleKindCount
}

// MaxHits returns the number of hits a fresh obstacle of this kind absorbs.
func (k ObstacleKind) MaxHits() int {
	if !k.Valid() {
		return 0
	}
	return obstacleRules[k].hits
}

// HitSource distinguishes match-adjacency damage from bomb-area damage.
type HitSource uint8

const (
	HitMatch HitSource = iota
	HitBlast
)

// obstacleRule is the capability row for one obstacle kind.
type obstacleRule struct {
	hits        int
	matchImmune bool // only blast damage applies
	alwaysFalls bool // falls regardless of Policy.ObstaclesFall
}

var obstacleRules = [obstacleKindCount]obstacleRule{
	ObstacleStone: {hits: 1, matchImmune: true},
	ObstacleBox:   {hits: 1},
	ObstacleVase:  {hits: 2, alwaysFalls: true},
}

// Block is a tagged variant: a cube, an obstacle or a bomb.
// Fields outside the active variant are zero.
type Block struct {
	ID   BlockID
	Kind Kind
	Pos  Coord

	// Cube
	Color Color
	Tier  Tier

	// Obstacle
	Obstacle ObstacleKind
	Hits     int // hits remaining

	hit bool // damaged during the current resolution pass
}

// NewCube returns a normal-tier cube.
func NewCube(id BlockID, color Color) *Block {
	return &Block{ID: id, Kind: KindCube, Color: color}
}

// NewObstacle returns a fresh obstacle with its full hit budget.
func NewObstacle(id BlockID, kind ObstacleKind) *Block {
	return &Block{ID: id, Kind: KindObstacle, Obstacle: kind, Hits: kind.MaxHits()}
}

// NewBomb returns a bomb block.
func NewBomb(id BlockID) *Block {
	return &Block{ID: id, Kind: KindBomb}
}

// IsCube reports whether b is a cube of any tier.
func (b *Block) IsCube() bool {
	return b != nil && b.Kind == KindCube
}

// IsBomb reports whether b is a bomb block.
func (b *Block) IsBomb() bool {
	return b != nil && b.Kind == KindBomb
}

// IsObstacle reports whether b is an obstacle.
func (b *Block) IsObstacle() bool {
	return b != nil && b.Kind == KindObstacle
}

// Matchable reports whether b can join a connected group.
func (b *Block) Matchable() bool {
	return b.IsCube()
}

// Falls reports whether gravity moves b.
// Stone and Box only fall when obstaclesFall is set; everything else always falls.
func (b *Block) Falls(obstaclesFall bool) bool {
	if b.Kind != KindObstacle || !b.Obstacle.Valid() {
		return true
	}
	return obstaclesFall || obstacleRules[b.Obstacle].alwaysFalls
}

// Damage applies one hit from src.
// applied is false when the hit had no effect (match hit on a match-immune
// obstacle, or an obstacle already hit this pass). removed is true when the
// block must leave the grid.
func (b *Block) Damage(src HitSource) (applied, removed bool) {
	if b.Kind != KindObstacle {
		return true, true
	}
	if b.hit || !b.Obstacle.Valid() {
		return false, false
	}
	if src == HitMatch && obstacleRules[b.Obstacle].matchImmune {
		return false, false
	}
	b.hit = true
	b.Hits--
	return true, b.Hits <= 0
}

// Damaged reports whether b was hit during the current pass.
func (b *Block) Damaged() bool {
	return b.hit
}

// ClearHit resets the per-pass damage flag.
func (b *Block) ClearHit() {
	b.hit = false
}

// Code returns the level-file code describing b's current state.
func (b *Block) Code() string {
	if b == nil {
		return CodeEmpty
	}
	switch b.Kind {
	case KindCube:
		return b.Color.Code()
	case KindBomb:
		return CodeBomb
	case KindObstacle:
		if b.Obstacle == ObstacleVase && b.Hits < ObstacleVase.MaxHits() {
			return CodeCrackedVase
		}
		return b.Obstacle.Code()
	}
	return CodeEmpty
}

// reset clears b for reuse by a pool.
func (b *Block) reset() {
	*b = Block{}
}
