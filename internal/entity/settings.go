package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mode decides which marks are played by humans and which by automated participants.
type Mode uint8

const (
	ModePlayerVsPlayer Mode = iota
	ModePlayerVsAutomated
	ModeAutomatedVsAutomated
)

// Next - returns the mode that follows in the toggle cycle.
func (that Mode) Next() Mode {
	switch that {
	case ModePlayerVsPlayer:
		return ModePlayerVsAutomated
	case ModePlayerVsAutomated:
		return ModeAutomatedVsAutomated
	default:
		return ModePlayerVsPlayer
	}
}

// IsAutomated reports whether the given mark is played by the computer in this mode.
func (that Mode) IsAutomated(mark Cell) bool {
	switch that {
	case ModePlayerVsAutomated:
		return mark == PlayerO
	case ModeAutomatedVsAutomated:
		return true
	default:
		return false
	}
}

func (that Mode) String() string {
	switch that {
	case ModePlayerVsAutomated:
		return "pva"
	case ModeAutomatedVsAutomated:
		return "ava"
	default:
		return "pvp"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pvp":
		return ModePlayerVsPlayer, nil
	case "pva", "ai_vs_human":
		return ModePlayerVsAutomated, nil
	case "ava", "ai_vs_ai":
		return ModeAutomatedVsAutomated, nil
	default:
		return ModePlayerVsPlayer, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, s)
	}
}

// Difficulty selects the search policy of automated participants.
type Difficulty uint8

const (
	DifficultyRandom Difficulty = iota
	DifficultyOptimal
)

func (that Difficulty) Valid() bool {
	return that == DifficultyRandom || that == DifficultyOptimal
}

func (that Difficulty) String() string {
	if that == DifficultyRandom {
		return "random"
	}
	return "optimal"
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "easy", "0":
		return DifficultyRandom, nil
	case "optimal", "hard", "1":
		return DifficultyOptimal, nil
	default:
		return DifficultyOptimal, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, s)
	}
}

// DefaultNames returns the display names a mode binds to X and O.
func DefaultNames(mode Mode) [2]string {
	switch mode {
	case ModePlayerVsAutomated:
		return [2]string{"Player 1", "Computer"}
	case ModeAutomatedVsAutomated:
		return [2]string{"Computer 1", "Computer 2"}
	default:
		return [2]string{"Player 1", "Player 2"}
	}
}

// MarkIndex maps PlayerX to 0 and PlayerO to 1.
func MarkIndex(mark Cell) int {
	if mark == PlayerO {
		return 1
	}
	return 0
}

// ParticipantKind tells renderers who is expected to move for a mark.
type ParticipantKind uint8

const (
	KindHuman ParticipantKind = iota
	KindAutomated
)

func (that ParticipantKind) String() string {
	if that == KindAutomated {
		return "automated"
	}
	return "human"
}
