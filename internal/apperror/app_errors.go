package apperror

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNoLegalMove     = errors.New("no legal move")

	ErrOutOfBounds   = errors.New("cell is out of bounds")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrRoundNotFound = errors.New("round not found")
)
