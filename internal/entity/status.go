package entity

import "fmt"

type State string

const (
	StateOngoing State = "ongoing"
	StateDraw    State = "draw"
	StateWin     State = "win"
)

// Status is the outcome of a board: ongoing, a draw, or a win for Winner.
type Status struct {
	State  State `json:"state"`
	Winner Mark  `json:"winner,omitempty"`
}

func Ongoing() Status {
	return Status{State: StateOngoing}
}

func Draw() Status {
	return Status{State: StateDraw}
}

func Win(mark Mark) Status {
	return Status{State: StateWin, Winner: mark}
}

func (s Status) IsOngoing() bool {
	return s.State == StateOngoing
}

func (s Status) IsTerminal() bool {
	return s.State == StateDraw || s.State == StateWin
}

func (s Status) String() string {
	if s.State == StateWin {
		return fmt.Sprintf("win(%s)", s.Winner)
	}

	return string(s.State)
}

// Validate - checks that the status is one of the known states and the winner matches it.
func (s Status) Validate() error {
	switch s.State {
	case StateOngoing, StateDraw:
		if s.Winner != Empty {
			return fmt.Errorf("%w: %s status with winner %s", ErrInvalidStatus, s.State, s.Winner)
		}
	case StateWin:
		if !s.Winner.IsPlayer() {
			return fmt.Errorf("%w: win without a winner", ErrInvalidStatus)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s.State)
	}

	return nil
}
