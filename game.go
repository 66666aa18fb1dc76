package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/invaders/pilot"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
	"github.com/milk9111/invaders/system"
)

// attractRestartSeconds is how long the autopilot lingers on game over.
const attractRestartSeconds = 3

type Options struct {
	Seed      uint64
	Debug     bool
	Watch     bool
	Mute      bool
	Autopilot string
}

type Game struct {
	session *sim.Session
	seed    uint64
	debug   bool

	input   *system.InputSystem
	render  *system.RenderSystem
	audio   *system.AudioSystem
	pilot   *pilot.Autopilot
	watcher *prefabs.Watcher
	stamps  prefabs.Stamps

	pauseUI *ebitenui.UI
	overUI  *ebitenui.UI

	paused    bool
	quit      bool
	overTicks int
}

func NewGame(rules *prefabs.RulesSpec, opts Options) (*Game, error) {
	cfg, err := sim.NewConfig(rules)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		session: sim.NewSession(cfg, sim.NewRand(opts.Seed)),
		seed:    opts.Seed,
		debug:   opts.Debug,
		input:   system.NewInputSystem(nil),
		render:  system.NewRenderSystem(system.NewPalette(rules.Palette)),
		audio:   system.NewAudioSystem(rules, opts.Mute),
		stamps:  prefabs.Stamps{},
	}
	g.render.Debug = opts.Debug

	if opts.Autopilot != "" {
		p, err := pilot.Load(opts.Autopilot)
		if err != nil {
			return nil, err
		}
		g.pilot = p
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("watch: %v; hot reload disabled", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.overUI = NewGameOverUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()

	events := g.input.Poll()
	for _, e := range events {
		if e.Command == sim.Quit {
			return ebiten.Termination
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.audio.Muted = !g.audio.Muted
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copyRunInfo()
	}

	// key edges still land while paused so no key stays stuck down
	g.session.Apply(events)

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.pilot != nil {
		g.drivePilot()
	}
	if g.session.Phase() == sim.Over {
		g.overUI.Update()
	}

	g.session.Advance(g.session.Config().TickSeconds())
	g.audio.Play(g.session.Events())
	return nil
}

func (g *Game) drivePilot() {
	snap := g.session.Snapshot()
	if snap.Over() {
		g.overTicks++
		if g.overTicks >= attractRestartSeconds*g.session.Config().TickRate {
			g.restart()
			snap = g.session.Snapshot()
		}
	} else {
		g.overTicks = 0
	}

	events, err := g.pilot.Update(snap)
	if err != nil {
		log.Printf("autopilot: %v; handing control back", err)
		g.session.Apply(g.pilot.Release())
		g.pilot = nil
		return
	}
	g.session.Apply(events)
}

func (g *Game) restart() {
	if g.session.Restart() {
		g.overTicks = 0
	}
}

func (g *Game) togglePause() {
	if g.session.Phase() == sim.Active {
		g.paused = !g.paused
	}
}

// pollWatcher picks up prefab edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		if change.Name != prefabs.RulesFile || !g.stamps.Changed(change.Name) {
			return
		}
		rules, err := prefabs.LoadRulesSpec()
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		cfg, err := sim.NewConfig(rules)
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		if err := g.session.SetConfig(cfg); err != nil {
			log.Printf("reload: %v", err)
			return
		}
		g.render = system.NewRenderSystem(system.NewPalette(rules.Palette))
		g.render.Debug = g.debug
		log.Printf("reload: %s applies on next restart", change.Name)
	case prefabs.ChangeScript:
		if g.pilot == nil || change.Name != g.pilot.Name()+".tengo" {
			return
		}
		if !g.stamps.Changed("scripts/" + change.Name) {
			return
		}
		p, err := pilot.Load(g.pilot.Name())
		if err != nil {
			log.Printf("reload: %v", err)
			return
		}
		g.session.Apply(g.pilot.Release())
		g.pilot = p
		log.Printf("reload: autopilot %s", change.Name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	g.render.Draw(screen, snap)

	if g.debug {
		drawDebug(screen, snap, g.seed)
	}

	switch {
	case g.paused:
		g.pauseUI.Draw(screen)
	case snap.Over():
		g.overUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	screen := g.session.Config().Screen
	return int(screen.Width), int(screen.Height)
}

func (g *Game) Close() {
	g.audio.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("watch: close: %v", err)
		}
	}
}
