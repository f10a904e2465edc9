package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/transport/view"
)

type newRoundRequest struct {
	Mark string `json:"mark"`
	Tier string `json:"tier"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	mark, tier := that.defaults.HumanMark, that.defaults.Tier

	if req.Mark != "" {
		parsed, err := entity.ParseMark(req.Mark)
		if err != nil {
			that.writeError(w, err)
			return
		}
		mark = parsed
	}

	if req.Tier != "" {
		parsed, err := bot.ParseTier(req.Tier)
		if err != nil {
			that.writeError(w, err)
			return
		}
		tier = parsed
	}

	round, err := that.rounds.NewRound(r.Context(), mark, tier)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view.FromRound(round, false))
}

func (that *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.GetRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.FromRound(round, false))
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	round, err := that.rounds.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	if errors.Is(err, apperror.ErrIllegalMove) && round != nil {
		writeJSON(w, http.StatusOK, view.FromRound(round, true))
		return
	}

	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.FromRound(round, false))
}

func (that *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.AITurn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.FromRound(round, false))
}

func (that *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	round, err := that.rounds.NextRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view.FromRound(round, false))
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidArgument), errors.Is(err, bot.ErrUnknownTier):
		return http.StatusBadRequest
	case errors.Is(err, bot.ErrTierNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
