package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
	"golang.org/x/image/colornames"
)

type palette struct {
	player    tcell.Style
	bullet    tcell.Style
	adversary tcell.Style
	text      tcell.Style
	gameOver  tcell.Style
	bg        tcell.Style
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func newPalette(spec prefabs.PaletteSpec) palette {
	bg := tcellColor(spec.Background.Or(colornames.Midnightblue))
	fg := func(c *prefabs.YAMLColor, fallback color.Color) tcell.Style {
		return tcell.StyleDefault.Foreground(tcellColor(c.Or(fallback))).Background(bg)
	}
	return palette{
		player:    fg(spec.Player, colornames.Deepskyblue),
		bullet:    fg(spec.Bullet, colornames.Gold),
		adversary: fg(spec.Adversary, colornames.Limegreen),
		text:      fg(spec.Text, colornames.White),
		gameOver:  fg(spec.GameOver, colornames.Red).Bold(true),
		bg:        tcell.StyleDefault.Background(bg),
	}
}

// cellRect is a span of terminal cells, end exclusive.
type cellRect struct {
	x0, y0, x1, y1 int
}

// toCells scales a simulation rect onto a cols x rows grid below the HUD
// row. Every visible rect covers at least one cell.
func toCells(r common.Rect, screen sim.Size, cols, rows int) cellRect {
	sx := float64(cols) / screen.Width
	sy := float64(rows-1) / screen.Height

	x, y := r.TopLeft(screen.Height)
	c := cellRect{
		x0: int(x * sx),
		y0: int(y*sy) + 1,
		x1: int((x + r.Width) * sx),
		y1: int((y+r.Height)*sy) + 1,
	}
	c.x1 = max(c.x1, c.x0+1)
	c.y1 = max(c.y1, c.y0+1)
	return c
}

func draw(s tcell.Screen, snap sim.Snapshot, pal palette, paused bool) {
	cols, rows := s.Size()
	s.Clear()
	if !snap.Over() {
		s.Fill(' ', pal.bg)
	}

	fill := func(r common.Rect, ch rune, style tcell.Style) {
		c := toCells(r, snap.Screen, cols, rows)
		for y := max(c.y0, 1); y < min(c.y1, rows); y++ {
			for x := max(c.x0, 0); x < min(c.x1, cols); x++ {
				s.SetContent(x, y, ch, nil, style)
			}
		}
	}

	if snap.Player.Visible {
		fill(snap.Player.Bounds, '█', pal.player)
	}
	for _, a := range snap.Adversaries {
		fill(a.Bounds, '▓', pal.adversary)
	}
	for _, b := range snap.Bullets {
		fill(b.Bounds, '|', pal.bullet)
	}

	hud := fmt.Sprintf("HP: %d  Score: %d", snap.Player.Health, snap.Score)
	if paused {
		hud += "  [paused]"
	}
	putString(s, 1, 0, hud, pal.text)

	if snap.Over() {
		msg := "GAME OVER - Enter to restart, Esc to quit"
		putString(s, max((cols-len(msg))/2, 0), rows/2, msg, pal.gameOver)
	}
	s.Show()
}

func putString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
