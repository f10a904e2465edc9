package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrCorruptState = errors.New("corrupt session state")

// Session - is a single game between the human and the computer. It owns its board and
// is only changed through ApplyMove.
type Session struct {
	board  entity.Board
	turn   entity.Mark
	human  entity.Mark
	ai     entity.Mark
	status entity.Status
}

// NewSession - starts a game where the human plays humanMark. A always moves first.
func NewSession(humanMark entity.Mark) (*Session, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: human mark %s", apperror.ErrInvalidArgument, humanMark)
	}

	return &Session{
		turn:   entity.A,
		human:  humanMark,
		ai:     humanMark.Opponent(),
		status: entity.Ongoing(),
	}, nil
}

// ApplyMove - places the current turn's mark at (row, col). An illegal move returns an
// error wrapping apperror.ErrIllegalMove and leaves the session unchanged.
func (that *Session) ApplyMove(row, col int) error {
	if err := that.validateMove(row, col); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	move := entity.Move{Row: row, Col: col}
	that.board.Set(move, that.turn)
	that.updateStatus(move)

	return nil
}

// validateMove - checks if the move is valid.
func (that *Session) validateMove(row, col int) error {
	if that.status.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfBounds, row, col)
	}

	if !that.board.IsEmpty(row, col) {
		return fmt.Errorf("%w: (%d,%d)", apperror.ErrCellOccupied, row, col)
	}

	return nil
}

// updateStatus - recomputes the status after a move and passes the turn on while the game continues.
func (that *Session) updateStatus(move entity.Move) {
	that.status = entity.StatusAfterMove(&that.board, move)
	if that.status.IsOngoing() {
		that.turn = that.turn.Opponent()
	}
}

// Board - returns a copy of the board.
func (that *Session) Board() entity.Board {
	return that.board
}

func (that *Session) Status() entity.Status {
	return that.status
}

func (that *Session) Turn() entity.Mark {
	return that.turn
}

func (that *Session) HumanMark() entity.Mark {
	return that.human
}

func (that *Session) AIMark() entity.Mark {
	return that.ai
}

func (that *Session) IsHumanTurn() bool {
	return that.status.IsOngoing() && that.turn == that.human
}

func (that *Session) IsAITurn() bool {
	return that.status.IsOngoing() && that.turn == that.ai
}

// State - returns a snapshot that Restore can turn back into a session.
func (that *Session) State() entity.SessionState {
	return entity.SessionState{
		Board:  that.board,
		Turn:   that.turn,
		Human:  that.human,
		AI:     that.ai,
		Status: that.status,
	}
}

// Restore - rebuilds a session from a snapshot, rejecting states no sequence of legal moves can reach.
func Restore(state entity.SessionState) (*Session, error) {
	if err := validateState(state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	return &Session{
		board:  state.Board,
		turn:   state.Turn,
		human:  state.Human,
		ai:     state.AI,
		status: state.Status,
	}, nil
}

func validateState(state entity.SessionState) error {
	if !state.Human.IsPlayer() || state.AI != state.Human.Opponent() {
		return fmt.Errorf("%w: human %s, ai %s", apperror.ErrInvalidArgument, state.Human, state.AI)
	}

	if !state.Turn.IsPlayer() {
		return fmt.Errorf("%w: turn %s", apperror.ErrInvalidArgument, state.Turn)
	}

	if err := state.Status.Validate(); err != nil {
		return fmt.Errorf("failed to validate status: %w", err)
	}

	board := state.Board
	countA, countB := board.Count(entity.A), board.Count(entity.B)
	if countA != countB && countA != countB+1 {
		return fmt.Errorf("%w: %d A marks, %d B marks", apperror.ErrInvalidArgument, countA, countB)
	}

	if computed := entity.StatusOf(&board); computed != state.Status {
		return fmt.Errorf("%w: stored %s, board shows %s", entity.ErrInvalidStatus, state.Status, computed)
	}

	// While the game runs, A moves whenever both sides have placed the same number of marks.
	// A finished game keeps the turn of whoever made the last move.
	expected := entity.B
	if countA == countB {
		expected = entity.A
	}
	if state.Status.IsTerminal() {
		expected = expected.Opponent()
	}
	if state.Turn != expected {
		return fmt.Errorf("%w: turn %s, expected %s", apperror.ErrNotYourTurn, state.Turn, expected)
	}

	return nil
}
