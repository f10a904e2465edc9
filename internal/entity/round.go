package entity

import "time"

// SessionState is the serialisable form of a game session.
type SessionState struct {
	Board  Board  `json:"board"`
	Turn   Mark   `json:"turn"`
	Human  Mark   `json:"human"`
	AI     Mark   `json:"ai"`
	Status Status `json:"status"`
}

const (
	OutcomeOngoing  = "ongoing"
	OutcomeDraw     = "draw"
	OutcomeHumanWin = "human-win"
	OutcomeAIWin    = "ai-win"
)

// Round is one game between the human and a computer tier.
type Round struct {
	ID        string       `json:"id"`
	Tier      string       `json:"tier"`
	State     SessionState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
}

// Outcome - describes the round's status from the human's point of view.
func (that *Round) Outcome() string {
	switch status := that.State.Status; {
	case status.State == StateDraw:
		return OutcomeDraw
	case status.State == StateWin && status.Winner == that.State.Human:
		return OutcomeHumanWin
	case status.State == StateWin:
		return OutcomeAIWin
	default:
		return OutcomeOngoing
	}
}

func (that *Round) IsFinished() bool {
	return that.State.Status.IsTerminal()
}
