package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Participant is either Human or Automated.
type Participant interface {
	Kind() entity.ParticipantKind
	participant()
}

// Human moves arrive from outside through MarkCell.
type Human struct{}

func (Human) Kind() entity.ParticipantKind { return entity.KindHuman }
func (Human) participant()                 {}

// Automated moves are chosen by Policy, which matches Level.
type Automated struct {
	Level  entity.Difficulty
	Policy SearchPolicy
}

func (Automated) Kind() entity.ParticipantKind { return entity.KindAutomated }
func (Automated) participant()                 {}

// Policies holds one policy per difficulty level.
type Policies struct {
	Random  SearchPolicy
	Optimal SearchPolicy
}

func (that Policies) For(level entity.Difficulty) SearchPolicy {
	if level == entity.DifficultyRandom {
		return that.Random
	}
	return that.Optimal
}

func bindParticipant(mode entity.Mode, mark entity.Cell, level entity.Difficulty, policies Policies) Participant {
	if !mode.IsAutomated(mark) {
		return Human{}
	}

	return Automated{Level: level, Policy: policies.For(level)}
}
