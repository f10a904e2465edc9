package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type mockRoundRepo struct {
	mock.Mock
}

func (that *mockRoundRepo) CreateOrUpdate(ctx context.Context, round *entity.Round) error {
	args := that.Called(ctx, round)
	return args.Error(0)
}

func (that *mockRoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	args := that.Called(ctx, id)

	round, _ := args.Get(0).(*entity.Round)
	if round != nil {
		stored := *round
		round = &stored
	}

	return round, args.Error(1)
}

func (that *mockRoundRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockStrategy struct {
	mock.Mock
}

func (that *mockStrategy) SelectMove(session *tictactoe.Session) (entity.Move, error) {
	args := that.Called(session)
	return args.Get(0).(entity.Move), args.Error(1)
}

func (that *mockStrategy) PickMove(board *entity.Board, mark entity.Mark) (entity.Move, error) {
	args := that.Called(board, mark)
	return args.Get(0).(entity.Move), args.Error(1)
}

// memoryRoundRepo keeps rounds in a map, copying them in and out.
type memoryRoundRepo struct {
	mu     sync.Mutex
	rounds map[string]entity.Round
}

func newMemoryRoundRepo() *memoryRoundRepo {
	return &memoryRoundRepo{rounds: make(map[string]entity.Round)}
}

func (that *memoryRoundRepo) CreateOrUpdate(_ context.Context, round *entity.Round) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rounds[round.ID] = *round

	return nil
}

func (that *memoryRoundRepo) GetByID(_ context.Context, id string) (*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	round, ok := that.rounds[id]
	if !ok {
		return nil, apperror.ErrRoundNotFound
	}

	return &round, nil
}

func (that *memoryRoundRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rounds[id]; !ok {
		return apperror.ErrRoundNotFound
	}
	delete(that.rounds, id)

	return nil
}

// gatedRoundRepo holds every read until a second read arrives or the wait runs out, so two
// unserialised callers both read the same snapshot before either writes.
type gatedRoundRepo struct {
	*memoryRoundRepo

	wait  time.Duration
	mu    sync.Mutex
	reads int
	both  chan struct{}
}

func newGatedRoundRepo(wait time.Duration) *gatedRoundRepo {
	return &gatedRoundRepo{memoryRoundRepo: newMemoryRoundRepo(), wait: wait, both: make(chan struct{})}
}

func (that *gatedRoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	round, err := that.memoryRoundRepo.GetByID(ctx, id)

	that.mu.Lock()
	that.reads++
	if that.reads == 2 {
		close(that.both)
	}
	that.mu.Unlock()

	select {
	case <-that.both:
	case <-time.After(that.wait):
	}

	return round, err
}
