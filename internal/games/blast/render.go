package blast

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

const (
	hudHeight    = 3
	footerHeight = 2
	tileW        = 4 // two glyph columns plus a cursor column on each side
)

// boardLayout places the grid on screen.
type boardLayout struct {
	board    platformcore.Rect // inner area, one tile per cell
	cellW    int
	cellH    int
	tooSmall bool
}

// computeLayout picks the tile height and centers the board.
func computeLayout(grid *core.Grid, screenW, screenH int) boardLayout {
	l := boardLayout{cellW: tileW, cellH: 2}
	availH := screenH - hudHeight - footerHeight - 2 // board border
	if grid.H*l.cellH > availH {
		l.cellH = 1
	}

	w, h := grid.W*l.cellW, grid.H*l.cellH
	if w+2 > screenW || h > availH {
		l.tooSmall = true
		return l
	}

	area := platformcore.NewRect(0, hudHeight, screenW, screenH-hudHeight-footerHeight)
	l.board = area.Centered(w, h)
	return l
}

// tileStyle is the look of one block.
type tileStyle struct {
	glyph string
	color platformcore.Color
}

var cubeColors = map[core.Color]platformcore.Color{
	core.ColorRed:    platformcore.ColorRed,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorBlue:   platformcore.ColorBlue,
	core.ColorYellow: platformcore.ColorYellow,
}

func styleOf(b *core.Block) tileStyle {
	if b == nil {
		return tileStyle{" ·", platformcore.ColorDarkGray}
	}
	switch b.Kind {
	case core.KindCube:
		if b.Tier == core.TierBomb {
			return tileStyle{"▓▓", cubeColors[b.Color].Bright()}
		}
		return tileStyle{"██", cubeColors[b.Color]}
	case core.KindBomb:
		return tileStyle{"<>", platformcore.ColorOrange}
	case core.KindObstacle:
		switch b.Obstacle {
		case core.ObstacleStone:
			return tileStyle{"##", platformcore.ColorGray}
		case core.ObstacleBox:
			return tileStyle{"[]", platformcore.ColorBrown}
		case core.ObstacleVase:
			if b.Hits < core.ObstacleVase.MaxHits() {
				return tileStyle{"{/", platformcore.ColorMagenta}
			}
			return tileStyle{"{}", platformcore.ColorCyan}
		}
	}
	return tileStyle{"??", platformcore.ColorWhite}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.ctrl == nil {
		renderOverlay(dst, g.message, "Press B to go back")
		return
	}
	if g.layout.tooSmall {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.anim.Busy():
	case g.finished:
		renderOverlay(dst, g.message, fmt.Sprintf("Score: %d  |  B: menu", g.score))
	case g.levelOver() && g.ctrl.Won():
		renderOverlay(dst, "Level Complete!", fmt.Sprintf("Score: %d  |  Enter: next level", g.score))
	case g.levelOver():
		renderOverlay(dst, "Out of Moves", "R: retry  |  B: menu")
	case g.stuck:
		renderOverlay(dst, "No Moves Possible", "R: restart  |  B: menu")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " BLAST"
	if g.ctrl != nil {
		lvl := g.opts.Levels[g.levelIndex]
		hud = fmt.Sprintf(" BLAST | %s | Moves: %d | Score: %d", lvl.Name, g.ctrl.Moves(), g.score)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	if g.ctrl != nil {
		dst.DrawTextWithColor(1, 1, "Goals: "+goalsText(g.ctrl.Goals()), platformcore.ColorWhite)
	}
	dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
}

func goalsText(goals []core.Goal) string {
	if len(goals) == 0 {
		return "none"
	}
	parts := make([]string, len(goals))
	for i, goal := range goals {
		mark := ""
		if goal.Remaining == 0 {
			mark = " ✓"
		}
		parts[i] = fmt.Sprintf("%s %d%s", goal.Obstacle, goal.Remaining, mark)
	}
	return strings.Join(parts, "  ")
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	l := g.layout
	frame := g.anim.Frame()
	grid := frame.Grid
	if grid == nil {
		grid = g.ctrl.Grid()
	}

	border := platformcore.NewRect(l.board.X-1, l.board.Y-1, l.board.W+2, l.board.H+2)
	dst.DrawBox(border, platformcore.ColorGray)

	var group core.BlockSet
	if g.hint && !g.anim.Busy() {
		group = g.ctrl.Group(g.cursor)
	}

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			c := core.C(x, y)
			b := grid.Get(c)
			if frame.Hidden[c] {
				b = nil
			}
			st := styleOf(b)
			switch {
			case frame.Flash[c]:
				st = tileStyle{"**", platformcore.ColorBrightWhite}
			case frame.Shake[c] && frame.Tick%2 == 1:
				st.glyph = string([]rune(st.glyph)[1]) + " "
			case b != nil && group.Has(b.ID):
				st.color = st.color.Bright()
			}
			g.drawTile(dst, x, y, st)
		}
	}

	for _, s := range frame.Sprites {
		if s.Y >= 0 && s.Y < grid.H {
			g.drawTile(dst, s.X, s.Y, styleOf(s.Block))
		}
	}

	if !g.anim.Busy() && !g.levelOver() {
		x := l.board.X + g.cursor.X*l.cellW
		y := l.board.Y + g.cursor.Y*l.cellH
		for dy := 0; dy < l.cellH; dy++ {
			dst.SetWithColor(x, y+dy, '[', platformcore.ColorBrightWhite)
			dst.SetWithColor(x+l.cellW-1, y+dy, ']', platformcore.ColorBrightWhite)
		}
	}
}

// drawTile fills the tile of grid cell (x, y), leaving the outer columns
// for the cursor.
func (g *Game) drawTile(dst *platformcore.Screen, x, y int, st tileStyle) {
	l := g.layout
	sx := l.board.X + x*l.cellW + 1
	sy := l.board.Y + y*l.cellH
	for dy := 0; dy < l.cellH; dy++ {
		dst.DrawTextWithColor(sx, sy+dy, st.glyph, st.color)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - 1
	controls := " Arrows/hjkl: move | Space/Enter/click: tap | ?: hint | R: restart | P: pause | B: menu"
	dst.DrawTextWithColor(0, y, controls, platformcore.ColorGray)
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorDefault)
}
