package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"conway/internal/cli"
	"conway/internal/core"
	"conway/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse("life", args, outW)
	if err != nil || shouldExit {
		return err
	}

	logger, closeLog, err := opts.Logger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl, err := opts.NewController(core.WallScheduler{}, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return term.New(screen, ctrl, logger).Run(ctx)
}
