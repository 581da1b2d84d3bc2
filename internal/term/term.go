// Package term is a tcell front end for the simulation controller.
package term

import (
	"context"
	"fmt"
	"log/slog"

	"conway/internal/core"
	"conway/internal/sim"

	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth = 2
	aliveRune = '█'
)

var (
	styleDefault = tcell.StyleDefault
	styleAlive   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
)

// quitEvent asks the event loop to return.
type quitEvent struct{}

// UI renders the controller grid on a tcell screen and maps keys and mouse
// clicks onto controller commands.
type UI struct {
	screen tcell.Screen
	ctrl   *sim.Controller
	logger *slog.Logger

	cursor core.Cell
}

// New returns a UI for ctrl drawing on an initialized screen.
func New(screen tcell.Screen, ctrl *sim.Controller, logger *slog.Logger) *UI {
	return &UI{screen: screen, ctrl: ctrl, logger: logger}
}

// Run processes screen events until the user quits or ctx is cancelled.
// Controller events, which may arrive on timer goroutines, only wake the
// loop; drawing always reads a fresh snapshot.
func (u *UI) Run(ctx context.Context) error {
	cancel := u.ctrl.Subscribe(func(ev sim.Event) {
		if err := u.screen.PostEvent(tcell.NewEventInterrupt(ev)); err != nil {
			u.logger.Debug("Dropped controller event, screen queue full.", "kind", ev.Kind.String())
		}
	})
	defer cancel()

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	}()

	u.screen.EnableMouse()
	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		quit, err := u.handle(ev)
		if err != nil {
			return err
		}
		if quit {
			u.ctrl.Pause()
			return nil
		}
		u.draw()
	}
}

func (u *UI) handle(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitEvent); ok {
			return true, nil
		}
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return false, nil
		}
		x, y := ev.Position()
		row, col := y, x/cellWidth
		if row < 0 || row >= u.ctrl.Size() || col < 0 || col >= u.ctrl.Size() {
			return false, nil
		}
		u.cursor = core.Cell{Row: row, Col: col}
		return false, u.toggle()
	}
	return false, nil
}

func (u *UI) handleKey(ev *tcell.EventKey) (bool, error) {
	n := u.ctrl.Size()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		u.cursor.Row = (u.cursor.Row - 1 + n) % n
	case tcell.KeyDown:
		u.cursor.Row = (u.cursor.Row + 1) % n
	case tcell.KeyLeft:
		u.cursor.Col = (u.cursor.Col - 1 + n) % n
	case tcell.KeyRight:
		u.cursor.Col = (u.cursor.Col + 1) % n
	case tcell.KeyEnter:
		return false, u.toggle()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, nil
		case ' ':
			if u.ctrl.IsRunning() {
				u.ctrl.Pause()
			} else {
				u.ctrl.Start()
			}
		case 't':
			return false, u.toggle()
		case 'n':
			u.ctrl.StepOnce()
		case 'c':
			u.ctrl.Clear()
		case 'r':
			u.ctrl.Randomize()
		}
	}
	return false, nil
}

func (u *UI) toggle() error {
	if _, err := u.ctrl.Toggle(u.cursor.Row, u.cursor.Col); err != nil {
		return fmt.Errorf("toggle at cursor: %w", err)
	}
	return nil
}

func (u *UI) draw() {
	snap := u.ctrl.Snapshot()
	u.screen.Clear()
	g := snap.Grid
	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			r, style := '·', styleDead
			if g.Alive(row, col) {
				r, style = aliveRune, styleAlive
			}
			if !snap.Running && u.cursor == (core.Cell{Row: row, Col: col}) {
				style = styleCursor
			}
			x := col * cellWidth
			u.screen.SetContent(x, row, r, nil, style)
			if r == aliveRune {
				u.screen.SetContent(x+1, row, r, nil, style)
			} else {
				u.screen.SetContent(x+1, row, ' ', nil, style)
			}
		}
	}

	state := sim.Idle
	if snap.Running {
		state = sim.Running
	}
	puts(u.screen, 0, n+1, styleStatus, fmt.Sprintf("Generation: %d  Population: %d  [%s]", snap.Generation, snap.Population, state))
	puts(u.screen, 0, n+2, styleDefault, "space start/pause  n step  c clear  r randomize  arrows+enter toggle  q quit")
	u.screen.Show()
}

func puts(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
