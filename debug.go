package main

import (
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/invaders/sim"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// runInfo is enough to replay a run: the seed plus where it ended up.
func runInfo(snap sim.Snapshot, seed uint64) string {
	st := snap.Stats
	return fmt.Sprintf("seed=%d tick=%d phase=%s score=%d shots=%d kills=%d escapes=%d hits=%d",
		seed, st.Ticks, snap.Phase, snap.Score, st.ShotsFired, st.Kills, st.Escapes, st.HitsTaken)
}

func drawDebug(screen *ebiten.Image, snap sim.Snapshot, seed uint64) {
	msg := fmt.Sprintf("TPS: %.1f    FPS: %.1f\n%s\nadversaries=%d bullets=%d\nF9: copy run info",
		ebiten.ActualTPS(), ebiten.ActualFPS(), runInfo(snap, seed), len(snap.Adversaries), len(snap.Bullets))
	ebitenutil.DebugPrintAt(screen, msg, 10, 30)
}

func (g *Game) copyRunInfo() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		log.Printf("clipboard: %v", clipboardErr)
		return
	}

	info := runInfo(g.session.Snapshot(), g.seed)
	clipboard.Write(clipboard.FmtText, []byte(info))
	log.Printf("copied: %s", info)
}
