package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roundUseCase interface {
	NewRound(ctx context.Context, humanMark entity.Mark, tier bot.Tier) (*entity.Round, error)
	GetRound(ctx context.Context, id string) (*entity.Round, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Round, error)
	AITurn(ctx context.Context, id string) (*entity.Round, error)
	NextRound(ctx context.Context, id string) (*entity.Round, error)
}

// Defaults are used when a new round request leaves the mark or the tier out.
type Defaults struct {
	HumanMark entity.Mark
	Tier      bot.Tier
}

type Server struct {
	logger   *slog.Logger
	rounds   roundUseCase
	defaults Defaults
}

func New(logger *slog.Logger, rounds roundUseCase, defaults Defaults) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		rounds:   rounds,
		defaults: defaults,
	}
}

// Handler - returns the router with every HTTP route.
func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(that.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)

	router.Route("/rounds", func(r chi.Router) {
		r.Post("/", that.handleNewRound)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.handleGetRound)
			r.Post("/moves", that.handleMove)
			r.Post("/ai-move", that.handleAIMove)
			r.Post("/next", that.handleNextRound)
		})
	})

	return router
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return serve(ctx, srv)
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(started),
		)
	})
}
