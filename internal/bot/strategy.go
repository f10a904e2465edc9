package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	ErrUnknownTier        = errors.New("unknown bot tier")
	ErrTierNotImplemented = errors.New("bot tier is not implemented")
)

// Strategy chooses the computer's moves.
type Strategy interface {
	// SelectMove - chooses a move for the session's AI mark. The session is only read.
	SelectMove(session *tictactoe.Session) (entity.Move, error)
	// PickMove - chooses a move for mark on board. The board is left as it was given.
	PickMove(board *entity.Board, mark entity.Mark) (entity.Move, error)
}

type Tier string

const (
	TierRandom    Tier = "random"
	TierHeuristic Tier = "heuristic"
	TierMinimax   Tier = "minimax"
	TierLearning  Tier = "learning"
)

// tierLevels map numeric difficulty levels to tiers.
var tierLevels = map[string]Tier{
	"0": TierRandom,
	"1": TierHeuristic,
	"2": TierMinimax,
	"3": TierLearning,
}

// ParseTier - accepts a tier name or its numeric level.
func ParseTier(value string) (Tier, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if tier, ok := tierLevels[value]; ok {
		return tier, nil
	}

	switch tier := Tier(value); tier {
	case TierRandom, TierHeuristic, TierMinimax, TierLearning:
		return tier, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, value)
	}
}

// New - returns the strategy for a tier. rnd must not be shared with another goroutine.
func New(tier Tier, rnd *rand.Rand) (Strategy, error) {
	switch tier {
	case TierRandom:
		return NewRandom(rnd), nil
	case TierHeuristic:
		return NewHeuristic(rnd), nil
	case TierMinimax:
		return NewMinimax(), nil
	case TierLearning:
		return nil, fmt.Errorf("%w: %s", ErrTierNotImplemented, tier)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
}

// NewRand - returns a random source for the strategies. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}

// selectMove - checks the session can still be played and picks a move for its AI mark.
func selectMove(strategy Strategy, session *tictactoe.Session) (entity.Move, error) {
	if status := session.Status(); !status.IsOngoing() {
		return entity.Move{}, fmt.Errorf("%w: game status %s", apperror.ErrNoLegalMove, status)
	}

	board := session.Board()

	return strategy.PickMove(&board, session.AIMark())
}

func emptyCells(board *entity.Board) ([]entity.Move, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: board is full", apperror.ErrNoLegalMove)
	}

	return cells, nil
}

// winsAt - reports whether placing mark at cell completes a line.
func winsAt(board *entity.Board, mark entity.Mark, cell entity.Move) bool {
	board.Set(cell, mark)
	status := entity.StatusAfterMove(board, cell)
	board.Set(cell, entity.Empty)

	return status == entity.Win(mark)
}
