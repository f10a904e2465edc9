package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type roundRepo interface {
	CreateOrUpdate(ctx context.Context, round *entity.Round) error
	GetByID(ctx context.Context, id string) (*entity.Round, error)
	DeleteByID(ctx context.Context, id string) error
}

// StrategyFactory returns the strategy playing a tier.
type StrategyFactory func(tier bot.Tier) (bot.Strategy, error)

// BotStrategies - builds strategies from the bot package, all sharing rnd.
func BotStrategies(rnd *rand.Rand) StrategyFactory {
	return func(tier bot.Tier) (bot.Strategy, error) {
		return bot.New(tier, rnd)
	}
}

// GameManager drives rounds between a human and a computer tier. Rounds live in the repository,
// so any transport can pick a round up by its ID.
type GameManager struct {
	logger    *slog.Logger
	roundRepo roundRepo

	// rounds serialises load, apply and save per round ID.
	rounds *roundLocks

	// strategies may share one random source, so every strategy call holds mu.
	mu         sync.Mutex
	strategies StrategyFactory
}

func NewGameManager(logger *slog.Logger, roundRepo roundRepo, strategies StrategyFactory) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		roundRepo:  roundRepo,
		rounds:     newRoundLocks(),
		strategies: strategies,
	}
}

// NewRound - starts a round with the human playing humanMark against tier.
func (that *GameManager) NewRound(ctx context.Context, humanMark entity.Mark, tier bot.Tier) (*entity.Round, error) {
	if _, err := that.strategy(tier); err != nil {
		return nil, err
	}

	session, err := tictactoe.NewSession(humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	round := &entity.Round{
		ID:        uuid.NewString(),
		Tier:      string(tier),
		State:     session.State(),
		CreatedAt: time.Now().UTC(),
	}

	if err = that.roundRepo.CreateOrUpdate(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	that.logger.Debug("round created", "round", round.ID, "tier", tier, "human", humanMark)

	return round, nil
}

func (that *GameManager) GetRound(ctx context.Context, id string) (*entity.Round, error) {
	round, err := that.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return round, nil
}

// MakeTurn - plays the human's move. A rejected move returns the unchanged round together with an
// error wrapping apperror.ErrIllegalMove.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Round, error) {
	log := that.logger.With("method", "MakeTurn", "round", id)

	unlock := that.rounds.lock(id)
	defer unlock()

	round, session, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status().IsOngoing() && !session.IsHumanTurn() {
		log.Debug("move rejected", "row", row, "col", col, "error", apperror.ErrNotYourTurn)
		return round, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, apperror.ErrNotYourTurn)
	}

	if err = session.ApplyMove(row, col); err != nil {
		log.Debug("move rejected", "row", row, "col", col, "error", err)
		return round, err
	}

	if err = that.save(ctx, round, session); err != nil {
		return nil, err
	}

	if round.IsFinished() {
		log.Info("round finished", "outcome", round.Outcome())
	}

	return round, nil
}

// AITurn - lets the round's tier play the computer's move.
func (that *GameManager) AITurn(ctx context.Context, id string) (*entity.Round, error) {
	log := that.logger.With("method", "AITurn", "round", id)

	unlock := that.rounds.lock(id)
	defer unlock()

	round, session, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Status().IsOngoing() {
		return round, apperror.ErrGameFinished
	}

	if !session.IsAITurn() {
		return round, apperror.ErrNotYourTurn
	}

	move, err := that.selectMove(bot.Tier(round.Tier), session)
	if err != nil {
		return nil, fmt.Errorf("failed to select move: %w", err)
	}

	if err = session.ApplyMove(move.Row, move.Col); err != nil {
		return nil, fmt.Errorf("strategy %s chose %s: %w", round.Tier, move, err)
	}

	if err = that.save(ctx, round, session); err != nil {
		return nil, err
	}

	log.Debug("ai moved", "move", move.String())

	if round.IsFinished() {
		log.Info("round finished", "outcome", round.Outcome())
	}

	return round, nil
}

// NextRound - replaces a round with a new one at the same tier, the human taking the other mark.
func (that *GameManager) NextRound(ctx context.Context, id string) (*entity.Round, error) {
	log := that.logger.With("method", "NextRound", "round", id)

	unlock := that.rounds.lock(id)
	defer unlock()

	previous, err := that.GetRound(ctx, id)
	if err != nil {
		return nil, err
	}

	round, err := that.NewRound(ctx, previous.State.Human.Opponent(), bot.Tier(previous.Tier))
	if err != nil {
		return nil, err
	}

	if err = that.roundRepo.DeleteByID(ctx, previous.ID); err != nil && !errors.Is(err, apperror.ErrRoundNotFound) {
		log.Error("failed to delete previous round", "error", err)
	}

	return round, nil
}

func (that *GameManager) load(ctx context.Context, id string) (*entity.Round, *tictactoe.Session, error) {
	round, err := that.GetRound(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	session, err := tictactoe.Restore(round.State)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore round %s: %w", id, err)
	}

	return round, session, nil
}

func (that *GameManager) save(ctx context.Context, round *entity.Round, session *tictactoe.Session) error {
	round.State = session.State()

	if err := that.roundRepo.CreateOrUpdate(ctx, round); err != nil {
		return fmt.Errorf("failed to update round: %w", err)
	}

	return nil
}

func (that *GameManager) selectMove(tier bot.Tier, session *tictactoe.Session) (entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	strategy, err := that.strategies(tier)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to build strategy: %w", err)
	}

	return strategy.SelectMove(session)
}

func (that *GameManager) strategy(tier bot.Tier) (bot.Strategy, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	strategy, err := that.strategies(tier)
	if err != nil {
		return nil, fmt.Errorf("failed to build strategy: %w", err)
	}

	return strategy, nil
}
