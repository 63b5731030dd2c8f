package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrUnknownCommand = errors.New("unknown command")

type commandKind uint8

const (
	commandNone commandKind = iota
	commandMove
	commandToggleMode
	commandToggleDifficulty
	commandDifficulty
	commandReset
	commandRename
	commandHelp
	commandQuit
)

type command struct {
	kind       commandKind
	row, col   int
	difficulty entity.Difficulty
	mark       entity.Cell
	name       string
}

// parseCommand - reads one input line. A blank line is commandNone.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{kind: commandNone}, nil
	}

	switch strings.ToLower(fields[0]) {
	case "m", "mode":
		return command{kind: commandToggleMode}, nil
	case "d", "difficulty":
		return command{kind: commandToggleDifficulty}, nil
	case "r", "reset":
		return command{kind: commandReset}, nil
	case "h", "help", "?":
		return command{kind: commandHelp}, nil
	case "q", "quit", "exit":
		return command{kind: commandQuit}, nil
	case "n", "name":
		return parseRename(fields)
	}

	if len(fields) == 1 {
		level, err := entity.ParseDifficulty(fields[0])
		if err != nil {
			return command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}

		return command{kind: commandDifficulty, difficulty: level}, nil
	}

	if len(fields) == 2 {
		row, rowErr := strconv.Atoi(fields[0])
		col, colErr := strconv.Atoi(fields[1])
		if rowErr == nil && colErr == nil {
			return command{kind: commandMove, row: row, col: col}, nil
		}
	}

	return command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}

func parseRename(fields []string) (command, error) {
	if len(fields) < 3 {
		return command{}, fmt.Errorf("%w: usage is n <1|2> <name>", ErrUnknownCommand)
	}

	mark, err := entity.ParseMark(fields[1])
	if err != nil {
		return command{}, err
	}

	return command{kind: commandRename, mark: mark, name: strings.Join(fields[2:], " ")}, nil
}
