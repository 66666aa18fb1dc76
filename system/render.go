package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

type Palette struct {
	Background color.Color
	Player     color.Color
	Bullet     color.Color
	Adversary  color.Color
	Text       color.Color
	GameOver   color.Color
}

// NewPalette fills any color the rules file leaves out with a default.
func NewPalette(spec prefabs.PaletteSpec) Palette {
	return Palette{
		Background: spec.Background.Or(colornames.Midnightblue),
		Player:     spec.Player.Or(colornames.Deepskyblue),
		Bullet:     spec.Bullet.Or(colornames.Gold),
		Adversary:  spec.Adversary.Or(colornames.Limegreen),
		Text:       spec.Text.Or(colornames.White),
		GameOver:   spec.GameOver.Or(colornames.Red),
	}
}

const gameOverScale = 4

// RenderSystem draws a snapshot. Simulation space is y-up with the origin
// at the bottom left; everything is flipped here and nowhere else.
type RenderSystem struct {
	palette Palette
	face    ebtext.Face
	Debug   bool
}

func NewRenderSystem(p Palette) *RenderSystem {
	return &RenderSystem{
		palette: p,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

// ToScreen returns the top-left screen corner of a simulation rect.
func ToScreen(r common.Rect, screenHeight float64) (x, y float64) {
	return r.TopLeft(screenHeight)
}

// HUDText returns the health and score lines.
func HUDText(snap sim.Snapshot) (health, score string) {
	return fmt.Sprintf("HP: %d", snap.Player.Health), fmt.Sprintf("Score: %d", snap.Score)
}

func (r *RenderSystem) Draw(screen *ebiten.Image, snap sim.Snapshot) {
	// the background goes away once the session is over
	if !snap.Over() {
		screen.Fill(r.palette.Background)
	}

	h := snap.Screen.Height
	if snap.Player.Visible {
		r.fill(screen, snap.Player.Bounds, h, r.palette.Player)
	}
	for _, b := range snap.Bullets {
		r.fill(screen, b.Bounds, h, r.palette.Bullet)
	}
	for _, a := range snap.Adversaries {
		r.fill(screen, a.Bounds, h, r.palette.Adversary)
	}

	if r.Debug {
		r.drawHitboxes(screen, snap)
	}

	hp, score := HUDText(snap)
	r.text(screen, hp, 10, 10, 1, r.palette.Text)
	r.text(screen, score, 100, 10, 1, r.palette.Text)

	if snap.Over() {
		r.text(screen, "GAME OVER", 100, h/2-50, gameOverScale, r.palette.GameOver)
	}
}

func (r *RenderSystem) fill(screen *ebiten.Image, rect common.Rect, screenHeight float64, clr color.Color) {
	x, y := ToScreen(rect, screenHeight)
	vector.FillRect(screen, float32(x), float32(y), float32(rect.Width), float32(rect.Height), clr, false)
}

func (r *RenderSystem) drawHitboxes(screen *ebiten.Image, snap sim.Snapshot) {
	h := snap.Screen.Height
	stroke := func(rect common.Rect, clr color.Color) {
		x, y := ToScreen(rect, h)
		vector.StrokeRect(screen, float32(x), float32(y), float32(rect.Width), float32(rect.Height), 1.0, clr, false)
	}

	stroke(snap.Player.Bounds, colornames.Cyan)
	for _, b := range snap.Bullets {
		stroke(b.Bounds, colornames.Yellow)
	}
	for _, a := range snap.Adversaries {
		stroke(a.Bounds, colornames.Orange)
		x, y := ToScreen(a.Bounds, h)
		r.text(screen, a.Patrol, x, y-14, 1, colornames.Orange)
	}
}

func (r *RenderSystem) text(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, r.face, op)
}
