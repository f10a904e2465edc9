package bot

import (
	"math/rand"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/require"
)

// board - builds a board from three rows written with A, B and '.'.
func board(rows ...string) entity.Board {
	var b entity.Board
	for r, row := range rows {
		for c, ch := range row {
			switch ch {
			case 'A':
				b[r][c] = entity.A
			case 'B':
				b[r][c] = entity.B
			}
		}
	}

	return b
}

// playGame - plays a full game where the human's moves come from human and the AI's from ai.
func playGame(t *testing.T, humanMark entity.Mark, human, ai Strategy) *tictactoe.Session {
	t.Helper()

	session, err := tictactoe.NewSession(humanMark)
	require.NoError(t, err)

	for session.Status().IsOngoing() {
		var move entity.Move
		if session.IsAITurn() {
			move, err = ai.SelectMove(session)
		} else {
			board := session.Board()
			move, err = human.PickMove(&board, session.Turn())
		}
		require.NoError(t, err)
		require.NoError(t, session.ApplyMove(move.Row, move.Col))
	}

	return session
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}
