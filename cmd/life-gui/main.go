//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"conway/internal/app"
	"conway/internal/cli"
	"conway/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts, shouldExit, err := cli.Parse("life-gui", os.Args[1:], os.Stdout)
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		log.Fatal(err)
	}
	if shouldExit {
		return
	}

	logger, closeLog, err := opts.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	sched := core.NewLoopScheduler()
	ctrl, err := opts.NewController(sched, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(ctrl, sched, opts.Scale)
	defer game.Close()
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
