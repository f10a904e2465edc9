package entity

import "errors"

const (
	WinScore  = 10
	DrawScore = 0

	// ScoreOngoing is returned together with terminal=false by Evaluate.
	ScoreOngoing = 999
)

var ErrInvalidStatus = errors.New("invalid game status")

// Lines are the eight winning triples: rows, then columns, then the two diagonals.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// lineOwner - returns the mark filling the whole line, or Empty.
func lineOwner(board *Board, line [3]Move) Mark {
	a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
	if a != Empty && a == b && b == c {
		return a
	}

	return Empty
}

// Winner - returns the mark of the first completed line, or Empty when no line is complete.
func Winner(board *Board) Mark {
	for _, line := range Lines {
		if owner := lineOwner(board, line); owner != Empty {
			return owner
		}
	}

	return Empty
}

// IsDraw - true iff the board is full and no line is complete.
func IsDraw(board *Board) bool {
	return !board.HasEmpty() && Winner(board) == Empty
}

// StatusOf - computes the status of a whole board.
func StatusOf(board *Board) Status {
	if winner := Winner(board); winner != Empty {
		return Win(winner)
	}

	if !board.HasEmpty() {
		return Draw()
	}

	return Ongoing()
}

// StatusAfterMove - computes the status after a mark was placed at move, looking only at
// the lines that pass through that cell.
func StatusAfterMove(board *Board, move Move) Status {
	mark := board.At(move)
	if mark == Empty {
		return StatusOf(board)
	}

	for _, line := range linesThrough(move) {
		if lineOwner(board, line) == mark {
			return Win(mark)
		}
	}

	if !board.HasEmpty() {
		return Draw()
	}

	return Ongoing()
}

func linesThrough(move Move) [][3]Move {
	lines := [][3]Move{Lines[move.Row], Lines[Size+move.Col]}
	if move.Row == move.Col {
		lines = append(lines, Lines[6])
	}
	if move.Row+move.Col == Size-1 {
		lines = append(lines, Lines[7])
	}

	return lines
}

// Evaluate - scores a board from aiMark's point of view at the given search depth.
// A win for aiMark scores WinScore-depth, a win for the opponent -WinScore+depth, a draw
// DrawScore. Non-terminal boards return (ScoreOngoing, false).
func Evaluate(board *Board, aiMark Mark, depth int) (int, bool) {
	switch winner := Winner(board); {
	case winner == Empty && board.HasEmpty():
		return ScoreOngoing, false
	case winner == Empty:
		return DrawScore, true
	case winner == aiMark:
		return WinScore - depth, true
	default:
		return -WinScore + depth, true
	}
}
