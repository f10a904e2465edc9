// Package selfplay runs games between two bot tiers and tallies the results.
package selfplay

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrInvalidConfig = errors.New("invalid self-play config")

type Config struct {
	// P1 plays X in even games; with Swap it plays O in odd games.
	P1, P2  bot.Tier
	Games   int
	Workers int
	Seed    int64
	Swap    bool
}

type Result struct {
	Game   int
	P1Mark entity.Mark
	Status entity.Status
	Moves  []entity.Move
}

// Winner - returns 1 or 2 for the winning player and 0 for a draw.
func (that *Result) Winner() int {
	switch {
	case that.Status.State != entity.StateWin:
		return 0
	case that.Status.Winner == that.P1Mark:
		return 1
	default:
		return 2
	}
}

type PlayerStats struct {
	Tier     bot.Tier `json:"tier"`
	Wins     int      `json:"wins"`
	WinsAsX  int      `json:"wins_as_x"`
	WinsAsO  int      `json:"wins_as_o"`
	Losses   int      `json:"losses"`
	GamesAsX int      `json:"games_as_x"`
}

type Stats struct {
	Games   []Result       `json:"-"`
	Draws   int            `json:"draws"`
	Players [2]PlayerStats `json:"players"`
}

// Simulate - plays cfg.Games games across cfg.Workers goroutines. Game i uses the seed cfg.Seed+i,
// so the results do not depend on the number of workers.
func Simulate(ctx context.Context, cfg Config) (*Stats, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, cfg.Games)
	}

	for _, tier := range []bot.Tier{cfg.P1, cfg.P2} {
		if _, err := bot.New(tier, bot.NewRand(1)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	workers := max(1, min(cfg.Workers, cfg.Games))
	results := make([]Result, cfg.Games)
	jobs := make(chan int)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(jobs)

		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- i:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}

		return nil
	})

	for w := 0; w < workers; w++ {
		group.Go(func() error {
			for i := range jobs {
				result, err := playGame(cfg, i)
				if err != nil {
					return err
				}
				results[i] = result
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return tally(cfg, results), nil
}

func playGame(cfg Config, game int) (Result, error) {
	rnd := bot.NewRand(cfg.Seed + int64(game) + 1)

	p1, err := bot.New(cfg.P1, rnd)
	if err != nil {
		return Result{}, err
	}

	p2, err := bot.New(cfg.P2, rnd)
	if err != nil {
		return Result{}, err
	}

	p1Mark := entity.A
	if cfg.Swap && game%2 == 1 {
		p1Mark = entity.B
	}

	// The session's AI seat is P1.
	session, err := tictactoe.NewSession(p1Mark.Opponent())
	if err != nil {
		return Result{}, err
	}

	result := Result{Game: game, P1Mark: p1Mark}

	for session.Status().IsOngoing() {
		var move entity.Move

		if session.IsAITurn() {
			move, err = p1.SelectMove(session)
		} else {
			board := session.Board()
			move, err = p2.PickMove(&board, session.Turn())
		}

		if err != nil {
			return Result{}, fmt.Errorf("game %d: %w", game, err)
		}

		if err = session.ApplyMove(move.Row, move.Col); err != nil {
			return Result{}, fmt.Errorf("game %d: strategy chose %s: %w", game, move, err)
		}

		result.Moves = append(result.Moves, move)
	}

	result.Status = session.Status()

	return result, nil
}

func tally(cfg Config, results []Result) *Stats {
	stats := &Stats{Games: results}
	stats.Players[0].Tier = cfg.P1
	stats.Players[1].Tier = cfg.P2

	for i := range results {
		result := &results[i]

		xPlayer := 0
		if result.P1Mark == entity.B {
			xPlayer = 1
		}
		stats.Players[xPlayer].GamesAsX++

		winner := result.Winner()
		if winner == 0 {
			stats.Draws++
			continue
		}

		player := &stats.Players[winner-1]
		player.Wins++
		if winner-1 == xPlayer {
			player.WinsAsX++
		} else {
			player.WinsAsO++
		}

		stats.Players[2-winner].Losses++
	}

	return stats
}
