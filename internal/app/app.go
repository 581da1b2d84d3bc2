//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"conway/internal/core"
	"conway/internal/render"
	"conway/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const statusHeight = 16

// Game adapts a sim.Controller to the ebiten.Game interface. Ticks are
// driven from Update through a cooperative scheduler, so the controller only
// ever runs on the ebiten goroutine.
type Game struct {
	ctrl    *sim.Controller
	sched   *core.LoopScheduler
	painter *render.GridPainter

	onColor  color.Color
	offColor color.Color
	scale    int

	events *observer
}

// New constructs a Game for the provided controller. sched must be the
// scheduler the controller was built with.
func New(ctrl *sim.Controller, sched *core.LoopScheduler, scale int) *Game {
	g := &Game{
		ctrl:     ctrl,
		sched:    sched,
		painter:  render.NewGridPainter(ctrl.Size()),
		onColor:  color.RGBA{R: 34, G: 211, B: 238, A: 255},
		offColor: color.RGBA{R: 30, G: 41, B: 59, A: 255},
		scale:    scale,
		events:   newObserver(ctrl),
	}
	return g
}

// Close unsubscribes the game from its controller.
func (g *Game) Close() { g.events.Close() }

// Update handles input and fires due ticks.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctrl.IsRunning() {
			g.ctrl.Pause()
		} else {
			g.ctrl.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Randomize()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if row, col, ok := render.CellAt(x, y-statusHeight, g.scale, g.ctrl.Size()); ok {
			if _, err := g.ctrl.Toggle(row, col); err != nil {
				return err
			}
		}
	}

	g.sched.Sync(time.Now())
	return nil
}

// Draw renders the latest grid and a status line.
func (g *Game) Draw(screen *ebiten.Image) {
	ev := g.events.Latest()

	g.painter.Blit(screen, ev.Grid.Cells(), g.onColor, g.offColor, g.scale, statusHeight)

	state := sim.Idle
	if ev.Running {
		state = sim.Running
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("gen %d  pop %d  %s", ev.Generation, ev.Population, state))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	n := g.ctrl.Size()
	return n * g.scale, n*g.scale + statusHeight
}
