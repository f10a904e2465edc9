package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Heuristic plays by fixed rules: complete its own line, else block the opponent's line,
// else play a random empty cell. It does not look for forks, so it can be beaten.
type Heuristic struct {
	rnd *rand.Rand
}

func NewHeuristic(rnd *rand.Rand) *Heuristic {
	return &Heuristic{rnd: rnd}
}

func (that *Heuristic) SelectMove(session *tictactoe.Session) (entity.Move, error) {
	return selectMove(that, session)
}

func (that *Heuristic) PickMove(board *entity.Board, mark entity.Mark) (entity.Move, error) {
	cells, err := emptyCells(board)
	if err != nil {
		return entity.Move{}, err
	}

	opponent := mark.Opponent()

	// win
	if cell, ok := thirdCell(board, mark, opponent); ok {
		return cell, nil
	}

	// block
	if cell, ok := thirdCell(board, opponent, mark); ok {
		return cell, nil
	}

	return cells[that.rnd.Intn(len(cells))], nil
}

// thirdCell - scans the lines in order and returns the empty cell of the first line that
// holds two of own marks and none of other's.
func thirdCell(board *entity.Board, own, other entity.Mark) (entity.Move, bool) {
	for _, line := range entity.Lines {
		var (
			owned, blocked int
			empty          entity.Move
		)

		for _, cell := range line {
			switch board.At(cell) {
			case own:
				owned++
			case other:
				blocked++
			default:
				empty = cell
			}
		}

		if owned == 2 && blocked == 0 {
			return empty, true
		}
	}

	return entity.Move{}, false
}
