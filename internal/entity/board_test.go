package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_IsEmpty(t *testing.T) {
	b := board("A..", ".B.", "...")

	assert.False(t, b.IsEmpty(0, 0))
	assert.False(t, b.IsEmpty(1, 1))
	assert.True(t, b.IsEmpty(2, 2))

	// out of bounds cells are never empty
	assert.False(t, b.IsEmpty(-1, 0))
	assert.False(t, b.IsEmpty(0, 3))
}

func TestInBounds(t *testing.T) {
	for _, m := range []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
		assert.False(t, m.InBounds(), m.String())
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			assert.True(t, InBounds(row, col))
		}
	}
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three marks
	b := board("A.B", ".A.", "...")

	// When: listing the empty cells
	cells := b.EmptyCells()

	// Then: they come back in row-major order
	expected := []Move{{0, 1}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	require.Equal(t, expected, cells)
	assert.Equal(t, 2, b.Count(A))
	assert.Equal(t, 1, b.Count(B))
}

func TestMark(t *testing.T) {
	t.Run("Opponent", func(t *testing.T) {
		assert.Equal(t, B, A.Opponent())
		assert.Equal(t, A, B.Opponent())
		assert.Equal(t, Empty, Empty.Opponent())
	})

	t.Run("ParseMark accepts names, symbols and turn numbers", func(t *testing.T) {
		for _, value := range []string{"A", "a", "X", "x", "1"} {
			mark, err := ParseMark(value)
			require.NoError(t, err)
			assert.Equal(t, A, mark)
		}

		for _, value := range []string{"B", "O", "o", "2"} {
			mark, err := ParseMark(value)
			require.NoError(t, err)
			assert.Equal(t, B, mark)
		}

		_, err := ParseMark("Z")
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("Board survives a JSON round trip", func(t *testing.T) {
		b := board("AB.", "...", "..B")

		data, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, `[["A","B",""],["","",""],["","","B"]]`, string(data))

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, b, decoded)
	})
}

func TestRound_Outcome(t *testing.T) {
	round := &Round{State: SessionState{Human: B, AI: A, Status: Ongoing()}}
	assert.Equal(t, OutcomeOngoing, round.Outcome())
	assert.False(t, round.IsFinished())

	round.State.Status = Win(B)
	assert.Equal(t, OutcomeHumanWin, round.Outcome())

	round.State.Status = Win(A)
	assert.Equal(t, OutcomeAIWin, round.Outcome())

	round.State.Status = Draw()
	assert.Equal(t, OutcomeDraw, round.Outcome())
	assert.True(t, round.IsFinished())
}
