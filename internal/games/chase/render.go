package chase

import (
	"fmt"
	"time"

	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

const (
	cellW     = 2 // terminal columns per maze cell
	hudHeight = 2
)

var ghostColors = map[string]core.Color{
	"blinky": core.ColorRed,
	"pinky":  core.ColorPink,
	"inky":   core.ColorCyan,
	"clyde":  core.ColorOrange,
}

// Render draws the board, HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.view

	needW := g.maze.Width() * cellW
	needH := g.maze.Height() + hudHeight
	if dst.Width() < needW || dst.Height() < needH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	offX := (dst.Width() - needW) / 2
	offY := hudHeight

	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap, offX, offY)

	switch {
	case snap.Status == StatusWon:
		renderOverlay(dst, "You Win!", fmt.Sprintf("Score %d in %s", snap.Score, formatClock(snap.Elapsed)), "R restart  1-4 difficulty")
	case snap.Status == StatusLost:
		renderOverlay(dst, "Caught!", fmt.Sprintf("Score %d in %s", snap.Score, formatClock(snap.Elapsed)), "R restart  1-4 difficulty")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue", "")
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" ASCIIMAN  Score: %d  Time: %s  Best: %d  Mode: %s",
		snap.Score, formatClock(snap.Elapsed), g.best, snap.Mode)
	dst.DrawText(0, 0, hud)
	if snap.Invincible {
		secs := int((snap.InvincibleLeft + time.Second - 1) / time.Second)
		dst.DrawTextColored(len(hud)+2, 0, fmt.Sprintf("POWER %ds", secs), core.ColorBrightCyan)
	}
	for x, n := 0, dst.Width(); x < n; x++ {
		dst.Set(x, 1, '─')
	}
}

func (g *Game) renderBoard(dst *core.Screen, snap Snapshot, offX, offY int) {
	put := func(p maze.Position, r rune, c core.Color) {
		dst.SetColored(offX+p.X*cellW, offY+p.Y, r, c)
	}

	for y := 0; y < g.maze.Height(); y++ {
		for x := 0; x < g.maze.Width(); x++ {
			p := maze.Position{X: x, Y: y}
			if g.maze.CellAt(p) == maze.CellWall {
				for i := 0; i < cellW; i++ {
					dst.SetColored(offX+x*cellW+i, offY+y, '█', core.ColorBlue)
				}
			}
		}
	}
	for _, p := range snap.Regular {
		put(p, '·', core.ColorWhite)
	}
	for _, p := range snap.Special {
		put(p, 'o', core.ColorBrightWhite)
	}

	put(snap.Player, 'C', core.ColorBrightYellow)

	blinkOn := g.profile.Blink > 0 && (snap.Now/g.profile.Blink)%2 == 1
	for _, gh := range snap.Ghosts {
		put(gh.Pos, '@', ghostColor(gh, snap.Invincible, blinkOn))
	}
}

// ghostColor picks the ghost's identity color. Frightened ghosts turn blue and
// locked-on ghosts flash.
func ghostColor(gh GhostView, frightened, blinkOn bool) core.Color {
	if frightened {
		return core.ColorBrightBlue
	}
	if gh.LockOn && blinkOn {
		return core.ColorBrightWhite
	}
	if c, ok := ghostColors[gh.Name]; ok {
		return c
	}
	return core.ColorMagenta
}

// renderOverlay draws a centered box with up to three lines.
func renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	count := 0
	for _, l := range lines {
		if l == "" {
			continue
		}
		count++
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	boxW := width + 4
	boxH := count*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	y := box.Y + 1
	for _, l := range lines {
		if l == "" {
			continue
		}
		dst.DrawTextCentered(y, l)
		y += 2
	}
}

func formatClock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
