package bot

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Minimax searches the whole game tree without pruning. It never loses.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) SelectMove(session *tictactoe.Session) (entity.Move, error) {
	return selectMove(that, session)
}

func (that *Minimax) PickMove(board *entity.Board, mark entity.Mark) (entity.Move, error) {
	if _, err := emptyCells(board); err != nil {
		return entity.Move{}, err
	}

	move, _ := Search(board, mark)

	return move, nil
}

// Search - returns the best move for mark and its score. Ties keep the first cell in
// row-major order. The board must have an empty cell; it is restored before returning.
func Search(board *entity.Board, mark entity.Mark) (entity.Move, int) {
	var (
		bestMove  entity.Move
		bestScore = math.MinInt
	)

	for _, cell := range board.EmptyCells() {
		board.Set(cell, mark)
		score := minimax(board, mark, false, 1)
		board.Set(cell, entity.Empty)

		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove, bestScore
}

// minimax - scores board for ai, where the maximizing layers place ai's mark and the
// minimizing layers place the opponent's.
func minimax(board *entity.Board, ai entity.Mark, maximizing bool, depth int) int {
	if score, terminal := entity.Evaluate(board, ai, depth); terminal {
		return score
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			board.Set(cell, ai)
			best = max(best, minimax(board, ai, false, depth+1))
			board.Set(cell, entity.Empty)
		}

		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		board.Set(cell, ai.Opponent())
		best = min(best, minimax(board, ai, true, depth+1))
		board.Set(cell, entity.Empty)
	}

	return best
}
