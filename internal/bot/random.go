package bot

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Random takes an immediate win when one exists and otherwise plays a uniformly random empty cell.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (that *Random) SelectMove(session *tictactoe.Session) (entity.Move, error) {
	return selectMove(that, session)
}

func (that *Random) PickMove(board *entity.Board, mark entity.Mark) (entity.Move, error) {
	cells, err := emptyCells(board)
	if err != nil {
		return entity.Move{}, err
	}

	for _, cell := range cells {
		if winsAt(board, mark, cell) {
			return cell, nil
		}
	}

	return cells[that.rnd.Intn(len(cells))], nil
}
