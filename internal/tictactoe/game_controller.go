package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrMissingPolicy = errors.New("search policy is not set")

// ResultKind tells whether the match is still on, won or drawn.
type ResultKind uint8

const (
	ResultOngoing ResultKind = iota
	ResultWin
	ResultDraw
)

func (that ResultKind) String() string {
	switch that {
	case ResultWin:
		return "win"
	case ResultDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Result is what a renderer needs to announce the end of a match.
type Result struct {
	Kind   ResultKind
	Winner entity.Cell
	Line   entity.WinLine
}

// Settings survive Reset.
type Settings struct {
	Mode       entity.Mode
	Difficulty entity.Difficulty
	Names      [2]string
}

func DefaultSettings() Settings {
	return Settings{
		Mode:       entity.ModePlayerVsPlayer,
		Difficulty: entity.DifficultyOptimal,
		Names:      entity.DefaultNames(entity.ModePlayerVsPlayer),
	}
}

// match is everything Reset throws away.
type match struct {
	board   *entity.Board
	current entity.Cell
	running bool
	result  Result
}

func newMatch() *match {
	return &match{
		board:   entity.NewBoard(),
		current: entity.PlayerX,
		running: true,
	}
}

// Snapshot is the controller state as plain values.
type Snapshot struct {
	Grid         [entity.Size][entity.Size]entity.Cell
	MarkCount    int
	Current      entity.Cell
	Running      bool
	Result       Result
	Mode         entity.Mode
	Difficulty   entity.Difficulty
	Names        [2]string
	Participants [2]entity.ParticipantKind
}

// Name returns the display name bound to mark.
func (that Snapshot) Name(mark entity.Cell) string {
	return that.Names[entity.MarkIndex(mark)]
}

// GameController sequences moves between the two participants. It is not safe for concurrent use.
type GameController struct {
	logger   *slog.Logger
	policies Policies

	settings     Settings
	participants [2]Participant
	match        *match
}

func NewGameController(logger *slog.Logger, policies Policies, settings Settings) (*GameController, error) {
	if policies.Random == nil || policies.Optimal == nil {
		return nil, ErrMissingPolicy
	}

	if !settings.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: %d", apperror.ErrUnknownDifficulty, settings.Difficulty)
	}

	if settings.Mode > entity.ModeAutomatedVsAutomated {
		return nil, fmt.Errorf("%w: %d", apperror.ErrUnknownMode, settings.Mode)
	}

	defaults := entity.DefaultNames(settings.Mode)
	for idx, name := range settings.Names {
		if strings.TrimSpace(name) == "" {
			settings.Names[idx] = defaults[idx]
		}
	}

	controller := &GameController{
		logger:   logger.With("component", "game_controller"),
		policies: policies,
		settings: settings,
		match:    newMatch(),
	}
	controller.bindParticipants()

	return controller, nil
}

// ApplyMove - marks the cell for the current player and checks for the end of the match.
func (that *GameController) ApplyMove(row, col int) error {
	if !that.match.running {
		return apperror.ErrGameFinished
	}

	board := that.match.board
	if !board.IsEmpty(row, col) {
		return fmt.Errorf("%w: cell (%d, %d) is not available", apperror.ErrInvalidMove, row, col)
	}

	player := that.match.current
	if err := board.Mark(row, col, player); err != nil {
		return fmt.Errorf("failed to mark cell: %w", err)
	}

	that.match.current = player.Opponent()
	that.logger.Debug("move applied", "player", player.String(), "row", row, "col", col)

	that.updateResult()

	return nil
}

// MarkCell - applies a move coming from a human input source.
func (that *GameController) MarkCell(row, col int) error {
	if !that.match.running {
		return apperror.ErrGameFinished
	}

	if that.participantFor(that.match.current).Kind() != entity.KindHuman {
		return apperror.ErrNotHumanTurn
	}

	return that.ApplyMove(row, col)
}

// AdvanceAutomatedTurn - lets an automated current player move. It reports false when
// there was nothing to do: the match is over or a human is to move.
func (that *GameController) AdvanceAutomatedTurn(ctx context.Context) (entity.Position, bool, error) {
	if !that.match.running {
		return entity.Position{}, false, nil
	}

	player := that.match.current
	automated, ok := that.participantFor(player).(Automated)
	if !ok {
		return entity.Position{}, false, nil
	}

	move, err := automated.Policy.ChooseMove(ctx, that.match.board, player)
	if err != nil {
		return entity.Position{}, false, fmt.Errorf("failed to choose %s move: %w", automated.Level, err)
	}

	if err = that.ApplyMove(move.Row, move.Col); err != nil {
		return entity.Position{}, false, fmt.Errorf("policy chose a rejected move %v: %w", move, err)
	}

	return move, true, nil
}

func (that *GameController) updateResult() {
	board := that.match.board

	if state := board.TerminalState(); state.HasWinner() {
		that.finish(Result{Kind: ResultWin, Winner: state.Winner, Line: state.Line})
		return
	}

	if board.IsFull() {
		that.finish(Result{Kind: ResultDraw})
	}
}

func (that *GameController) finish(result Result) {
	that.match.running = false
	that.match.result = result

	winner := "No one"
	if result.Kind == ResultWin {
		winner = that.settings.Names[entity.MarkIndex(result.Winner)]
	}

	that.logger.Info("game finished", "result", result.Kind.String(), "winner", winner)
}

// ToggleMode - moves to the next mode in the cycle.
func (that *GameController) ToggleMode() entity.Mode {
	next := that.settings.Mode.Next()
	that.applyMode(next)

	return next
}

// SetMode - switches straight to mode. The board and turn are kept.
func (that *GameController) SetMode(mode entity.Mode) error {
	if mode > entity.ModeAutomatedVsAutomated {
		return fmt.Errorf("%w: %d", apperror.ErrUnknownMode, mode)
	}

	if mode != that.settings.Mode {
		that.applyMode(mode)
	}

	return nil
}

func (that *GameController) applyMode(mode entity.Mode) {
	previous := that.settings.Mode
	defaults := entity.DefaultNames(mode)

	// computer slots get the mode's names; a slot handed back to a human loses its computer name
	for idx, mark := range [2]entity.Cell{entity.PlayerX, entity.PlayerO} {
		if mode.IsAutomated(mark) || previous.IsAutomated(mark) {
			that.settings.Names[idx] = defaults[idx]
		}
	}

	that.settings.Mode = mode
	that.bindParticipants()

	that.logger.Debug("mode changed", "from", previous.String(), "to", mode.String())
}

// SetDifficulty - applies level to every automated participant, now and after later mode changes.
func (that *GameController) SetDifficulty(level entity.Difficulty) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %d", apperror.ErrUnknownDifficulty, level)
	}

	that.settings.Difficulty = level
	that.bindParticipants()

	that.logger.Debug("difficulty changed", "difficulty", level.String())

	return nil
}

// ToggleDifficulty - flips between random and optimal play.
func (that *GameController) ToggleDifficulty() entity.Difficulty {
	level := entity.DifficultyOptimal
	if that.settings.Difficulty == entity.DifficultyOptimal {
		level = entity.DifficultyRandom
	}

	// level is always valid here
	_ = that.SetDifficulty(level)

	return level
}

// Rename - binds a display name to mark. Blank names are ignored.
func (that *GameController) Rename(mark entity.Cell, name string) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: %v", apperror.ErrUnknownMark, mark)
	}

	if name = strings.TrimSpace(name); name != "" {
		that.settings.Names[entity.MarkIndex(mark)] = name
	}

	return nil
}

// Reset - starts a new match. Mode, difficulty and names are kept.
func (that *GameController) Reset() {
	that.match = newMatch()
	that.logger.Debug("game reset")
}

func (that *GameController) bindParticipants() {
	for idx, mark := range [2]entity.Cell{entity.PlayerX, entity.PlayerO} {
		that.participants[idx] = bindParticipant(that.settings.Mode, mark, that.settings.Difficulty, that.policies)
	}
}

func (that *GameController) participantFor(mark entity.Cell) Participant {
	return that.participants[entity.MarkIndex(mark)]
}

// Participant returns who plays mark.
func (that *GameController) Participant(mark entity.Cell) Participant {
	return that.participantFor(mark)
}

// Board returns a copy of the live board.
func (that *GameController) Board() *entity.Board {
	return that.match.board.Clone()
}

func (that *GameController) CurrentPlayer() entity.Cell {
	return that.match.current
}

func (that *GameController) IsRunning() bool {
	return that.match.running
}

func (that *GameController) Result() Result {
	return that.match.result
}

func (that *GameController) Settings() Settings {
	return that.settings
}

// CurrentIsAutomated reports whether the next move must come from AdvanceAutomatedTurn.
func (that *GameController) CurrentIsAutomated() bool {
	return that.match.running && that.participantFor(that.match.current).Kind() == entity.KindAutomated
}

func (that *GameController) Snapshot() Snapshot {
	return Snapshot{
		Grid:       that.match.board.Grid(),
		MarkCount:  that.match.board.MarkCount(),
		Current:    that.match.current,
		Running:    that.match.running,
		Result:     that.match.result,
		Mode:       that.settings.Mode,
		Difficulty: that.settings.Difficulty,
		Names:      that.settings.Names,
		Participants: [2]entity.ParticipantKind{
			that.participants[0].Kind(),
			that.participants[1].Kind(),
		},
	}
}
