package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const spin = 14

// Driver plays one controller on a line based terminal.
type Driver struct {
	logger     *slog.Logger
	controller *tictactoe.GameController
	renderer   *Renderer

	in    *bufio.Scanner
	out   io.Writer
	delay time.Duration
}

// NewDriver - delay paces automated moves so they can be followed; zero plays them at once.
func NewDriver(
	logger *slog.Logger,
	controller *tictactoe.GameController,
	in io.Reader,
	out io.Writer,
	delay time.Duration,
	opts ...termenv.OutputOption,
) *Driver {
	return &Driver{
		logger:     logger.With("component", "terminal"),
		controller: controller,
		renderer:   NewRenderer(out, opts...),
		in:         bufio.NewScanner(in),
		out:        out,
		delay:      delay,
	}
}

// Run - reads commands until q, the end of input or ctx is done.
func (that *Driver) Run(ctx context.Context) error {
	that.renderer.Help()
	that.renderer.Render(that.controller.Snapshot())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if that.controller.CurrentIsAutomated() {
			if err := that.playAutomated(ctx); err != nil {
				return err
			}
			continue
		}

		that.renderer.Prompt()
		if !that.in.Scan() {
			return that.in.Err()
		}

		cmd, err := parseCommand(that.in.Text())
		if err != nil {
			that.renderer.Error(err)
			continue
		}

		if cmd.kind == commandQuit {
			return nil
		}

		if err = that.execute(cmd); err != nil {
			that.renderer.Error(err)
		}
	}
}

func (that *Driver) playAutomated(ctx context.Context) error {
	snapshot := that.controller.Snapshot()
	mark := snapshot.Current
	name := snapshot.Name(mark)

	if err := that.pace(ctx, name); err != nil {
		return err
	}

	move, _, err := that.controller.AdvanceAutomatedTurn(ctx)
	if err != nil {
		return fmt.Errorf("automated turn failed: %w", err)
	}

	that.renderer.Move(name, mark, move)
	that.renderer.Render(that.controller.Snapshot())

	return nil
}

// pace - waits out the delay with a spinner.
func (that *Driver) pace(ctx context.Context, name string) error {
	if that.delay <= 0 {
		return nil
	}

	s := spinner.New(spinner.CharSets[spin], 100*time.Millisecond, spinner.WithWriter(that.out))
	s.Suffix = " " + name + " is thinking"
	s.Start()
	defer s.Stop()

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (that *Driver) execute(cmd command) error {
	switch cmd.kind {
	case commandNone:
		return nil
	case commandHelp:
		that.renderer.Help()
		return nil
	case commandMove:
		if err := that.controller.MarkCell(cmd.row, cmd.col); err != nil {
			return err
		}
	case commandToggleMode:
		that.controller.ToggleMode()
	case commandToggleDifficulty:
		that.controller.ToggleDifficulty()
	case commandDifficulty:
		if err := that.controller.SetDifficulty(cmd.difficulty); err != nil {
			return err
		}
	case commandRename:
		if err := that.controller.Rename(cmd.mark, cmd.name); err != nil {
			return err
		}
	case commandReset:
		that.controller.Reset()
	default:
		return ErrUnknownCommand
	}

	that.logger.Debug("command applied", "kind", int(cmd.kind))
	that.renderer.Render(that.controller.Snapshot())

	return nil
}
