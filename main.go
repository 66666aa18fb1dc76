package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/invaders/prefabs"
)

func main() {
	seed := flag.Uint64("seed", 1, "seed for spawn positions and patrol widths")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload prefabs/ edits (applied on restart)")
	mute := flag.Bool("mute", false, "start with sound off")
	autopilot := flag.String("autopilot", "", "script in prefabs/scripts that plays instead of the keyboard")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	rules, err := prefabs.LoadRulesSpec()
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}

	game, err := NewGame(rules, Options{
		Seed:      *seed,
		Debug:     *debug,
		Watch:     *watch,
		Mute:      *mute,
		Autopilot: *autopilot,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("invaders")
	ebiten.SetTPS(game.session.Config().TickRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
