package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 4
	minHUDW    = 30
)

// boardSize returns the board's on-screen width and height.
func (g *Game) boardSize() (w, h int) {
	rows, cols := g.variant.Rows, g.variant.Cols
	if g.grid != nil {
		rows, cols = g.grid.Rows(), g.grid.Cols()
	}
	return cols*cellWidth + 1, rows*cellHeight + 1
}

// minScreenSize is the board plus HUD, hint and controls lines.
func (g *Game) minScreenSize() (w, h int) {
	bw, bh := g.boardSize()
	return max(bw, minHUDW) + 2, hudHeight + bh + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	hudW := max(boardW, minHUDW)
	hudX := boardX - (hudW-boardW)/2

	title := g.variant.Title
	dst.DrawTextColor(hudX+(hudW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(hudX, 1, fmt.Sprintf("Score: %d", g.score))
	bestStr := fmt.Sprintf("Best: %d", max(g.best, g.score))
	dst.DrawText(hudX+hudW-len(bestStr), 1, bestStr)

	var infoStr string
	switch {
	case g.variant.Mode == ModeCampaign && len(g.levels) > 0:
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, len(g.levels), g.currentTarget)
	case g.currentTarget > 0:
		infoStr = fmt.Sprintf("Goal: %d  Max: %d", g.currentTarget, g.grid.MaxTile())
	default:
		infoStr = fmt.Sprintf("Max: %d  Moves: %d", g.grid.MaxTile(), g.moves)
	}
	dst.DrawTextColor(hudX+(hudW-len(infoStr))/2, 2, infoStr, core.ColorCyan)
}

// renderBoard draws the grid lines and the tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	rows, cols := g.grid.Rows(), g.grid.Cols()

	for y := range rows + 1 {
		for x := range cols + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColored(px, py, junction(y, x, rows, cols), core.ColorGridLine)

			if x < cols {
				dst.DrawHLine(px+1, py, cellWidth-1, '─', core.ColorGridLine)
			}
			if y < rows {
				dst.DrawVLine(px, py+1, cellHeight-1, '│', core.ColorGridLine)
			}
		}
	}

	if g.anim.phase == PhaseSlide {
		t := g.anim.progress()
		for _, s := range g.anim.slides {
			r, c := interpolate(s, t)
			g.drawTile(dst, boardX, boardY, r, c, s.Value, core.TileColor(s.Value))
		}
		return
	}

	for r := range rows {
		for c := range cols {
			val := g.grid.Get(r, c)
			if val == 0 || g.anim.hidesSpawn(board.Cell{Row: r, Col: c}) {
				continue
			}
			color := core.TileColor(val)
			if g.anim.phase == PhasePop && g.popping(r, c) {
				color = core.ColorBrightWhite
			}
			g.drawTile(dst, boardX, boardY, float64(r), float64(c), val, color)
		}
	}
}

// popping reports whether the tile at (r, c) flashes in the pop phase:
// the spawned tile and every merge result.
func (g *Game) popping(r, c int) bool {
	if g.anim.pending && g.anim.spawned.Cell == (board.Cell{Row: r, Col: c}) {
		return true
	}
	return g.grid.Merged(r, c)
}

// drawTile centers the value inside a cell. Fractional positions come from
// the slide animation.
func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, row, col float64, val int, color core.Color) {
	valStr := strconv.Itoa(val)
	padLeft := max((cellWidth-1-len(valStr))/2, 0)

	x := boardX + int(math.Round(col*cellWidth)) + 1 + padLeft
	y := boardY + int(math.Round(row*cellHeight)) + 1
	dst.DrawTextColor(x, y, valStr, color)
}

func junction(y, x, rows, cols int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == cols:
		return '┐'
	case y == rows && x == 0:
		return '└'
	case y == rows && x == cols:
		return '┘'
	case y == 0:
		return '┬'
	case y == rows:
		return '┴'
	case x == 0:
		return '├'
	case x == cols:
		return '┤'
	default:
		return '┼'
	}
}

var hintArrows = map[board.Direction]string{
	board.Up:    "↑",
	board.Down:  "↓",
	board.Left:  "←",
	board.Right: "→",
}

// renderFooter draws the hint and the control line under the board.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.hintTicks > 0 {
		dst.DrawTextCentered(y, fmt.Sprintf("Hint: %s %s", hintArrows[g.hint], g.hint))
	}
	dst.DrawTextCentered(y+1, g.Controls())
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, core.ColorYellow, "PAUSED", "Press P to resume")

	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= len(g.levels)-1 {
			g.drawOverlay(dst, centerX, centerY, core.ColorGreen, targetStr, "Final level complete!")
		} else {
			nextStr := fmt.Sprintf("Next: Level %d", g.levelIndex+2)
			g.drawOverlay(dst, centerX, centerY, core.ColorGreen, targetStr, nextStr)
		}

	case g.won && g.variant.Mode == ModeClassic:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightGreen, "YOU WIN!", fmt.Sprintf("Score: %d", g.score), "Press R to restart")

	case g.won:
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightGreen, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")

	case g.gameOver:
		maxStr := fmt.Sprintf("Max tile: %d", g.grid.MaxTile())
		g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, c)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	parts := []string{"Arrows/WASD: Move"}
	if g.cfg.Rules.Undo {
		parts = append(parts, "U: Undo")
	}
	parts = append(parts, "H: Hint", "P: Pause", "R: Restart", "Q: Quit")
	return strings.Join(parts, " | ")
}
