// Package view renders rounds for clients. Marks are drawn as X and O here and nowhere else.
package view

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Round struct {
	ID       string                           `json:"id"`
	Tier     string                           `json:"tier"`
	Board    [entity.Size][entity.Size]string `json:"board"`
	Turn     string                           `json:"turn"`
	Human    string                           `json:"human"`
	AI       string                           `json:"ai"`
	Status   entity.State                     `json:"status"`
	Winner   string                           `json:"winner,omitempty"`
	Outcome  string                           `json:"outcome"`
	Rejected bool                             `json:"rejected"`
}

// FromRound - renders round; rejected marks a response to a move that was not applied.
func FromRound(round *entity.Round, rejected bool) Round {
	state := round.State

	result := Round{
		ID:       round.ID,
		Tier:     round.Tier,
		Turn:     state.Turn.Symbol(),
		Human:    state.Human.Symbol(),
		AI:       state.AI.Symbol(),
		Status:   state.Status.State,
		Winner:   state.Status.Winner.Symbol(),
		Outcome:  round.Outcome(),
		Rejected: rejected,
	}

	for row := range state.Board {
		for col, mark := range state.Board[row] {
			result.Board[row][col] = mark.Symbol()
		}
	}

	return result
}
