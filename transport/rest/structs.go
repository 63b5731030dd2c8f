package rest

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Game struct {
	Board      [entity.Size][entity.Size]string `json:"board"`
	MarkCount  int                              `json:"mark_count"`
	Current    string                           `json:"current"`
	Running    bool                             `json:"running"`
	Result     Result                           `json:"result"`
	Mode       string                           `json:"mode"`
	Difficulty string                           `json:"difficulty"`
	Players    [2]Player                        `json:"players"`
}

type Result struct {
	Kind   string `json:"kind"`
	Winner string `json:"winner,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

type Line struct {
	Kind  string                       `json:"kind"`
	Index int                          `json:"index"`
	Cells [entity.Size]entity.Position `json:"cells"`
}

type Player struct {
	Mark string `json:"mark"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type Move struct {
	Moved bool             `json:"moved"`
	Cell  *entity.Position `json:"cell,omitempty"`
	Game  Game             `json:"game"`
}

type cellRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type nameRequest struct {
	Mark string `json:"mark"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func gameFromSnapshot(snapshot tictactoe.Snapshot) Game {
	game := Game{
		MarkCount:  snapshot.MarkCount,
		Current:    snapshot.Current.String(),
		Running:    snapshot.Running,
		Result:     Result{Kind: snapshot.Result.Kind.String()},
		Mode:       snapshot.Mode.String(),
		Difficulty: snapshot.Difficulty.String(),
	}

	for row := range snapshot.Grid {
		for col, cell := range snapshot.Grid[row] {
			game.Board[row][col] = cell.String()
		}
	}

	if snapshot.Result.Kind == tictactoe.ResultWin {
		line := snapshot.Result.Line
		game.Result.Winner = snapshot.Result.Winner.String()
		game.Result.Line = &Line{Kind: line.Kind.String(), Index: line.Index, Cells: line.Cells()}
	}

	for idx, mark := range [2]entity.Cell{entity.PlayerX, entity.PlayerO} {
		game.Players[idx] = Player{
			Mark: mark.String(),
			Name: snapshot.Names[idx],
			Kind: snapshot.Participants[idx].String(),
		}
	}

	return game
}
