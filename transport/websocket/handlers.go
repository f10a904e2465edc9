package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/transport/view"
)

func (that *Server) handleNewRound(ctx context.Context, conn *client, msg *Message) error {
	var req NewRoundPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			conn.sendError(msg.Action, "invalid payload")
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	mark, tier := that.options.HumanMark, that.options.Tier

	if req.Mark != "" {
		parsed, err := entity.ParseMark(req.Mark)
		if err != nil {
			conn.sendError(msg.Action, err.Error())
			return nil
		}
		mark = parsed
	}

	if req.Tier != "" {
		parsed, err := bot.ParseTier(req.Tier)
		if err != nil {
			conn.sendError(msg.Action, err.Error())
			return nil
		}
		tier = parsed
	}

	round, err := that.rounds.NewRound(ctx, mark, tier)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyRound(ctx, conn, msg.Action, round)
}

func (that *Server) handleState(ctx context.Context, conn *client, msg *Message) error {
	var req RoundPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.ID == "" {
		conn.sendError(msg.Action, "round id is required")
		return nil
	}

	round, err := that.rounds.GetRound(ctx, req.ID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyRound(ctx, conn, msg.Action, round)
}

func (that *Server) handleTurn(ctx context.Context, conn *client, msg *Message) error {
	var req TurnPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.ID == "" || req.Row == nil || req.Col == nil {
		conn.sendError(msg.Action, "id, row and col are required")
		return nil
	}

	round, err := that.rounds.MakeTurn(ctx, req.ID, *req.Row, *req.Col)
	if errors.Is(err, apperror.ErrIllegalMove) && round != nil {
		return conn.send(newMessage(msg.Action, RoundResponse{Round: view.FromRound(round, true)}))
	}

	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyRound(ctx, conn, msg.Action, round)
}

func (that *Server) handleNextRound(ctx context.Context, conn *client, msg *Message) error {
	var req RoundPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.ID == "" {
		conn.sendError(msg.Action, "round id is required")
		return nil
	}

	round, err := that.rounds.NextRound(ctx, req.ID)
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return that.replyRound(ctx, conn, msg.Action, round)
}

// replyRound - sends the round and, when the computer is to move, schedules its turn.
func (that *Server) replyRound(ctx context.Context, conn *client, action string, round *entity.Round) error {
	if err := conn.send(newMessage(action, RoundResponse{Round: view.FromRound(round, false)})); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	state := round.State
	if state.Status.IsOngoing() && state.Turn == state.AI {
		go that.playAITurn(ctx, conn, round.ID)
	}

	return nil
}

// playAITurn - waits the configured delay, then lets the computer move and pushes the result.
func (that *Server) playAITurn(ctx context.Context, conn *client, id string) {
	log := that.logger.With("method", "playAITurn", "round", id)

	timer := time.NewTimer(that.options.AIDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	round, err := that.rounds.AITurn(ctx, id)
	if err != nil {
		// The client may have moved on to another round while we waited.
		if errors.Is(err, apperror.ErrRoundNotFound) || errors.Is(err, apperror.ErrNotYourTurn) || errors.Is(err, apperror.ErrGameFinished) {
			log.Debug("ai turn skipped", "error", err)
			return
		}

		log.Error("ai turn failed", "error", err)
		conn.sendError(actionAITurn, "computer failed to move")

		return
	}

	if err = conn.send(newMessage(actionAITurn, RoundResponse{Round: view.FromRound(round, false)})); err != nil {
		log.Debug("failed to push ai turn", "error", err)
	}
}

func (that *Server) replyError(conn *client, action string, err error) error {
	switch {
	case errors.Is(err, apperror.ErrRoundNotFound),
		errors.Is(err, apperror.ErrInvalidArgument),
		errors.Is(err, bot.ErrUnknownTier),
		errors.Is(err, bot.ErrTierNotImplemented):
		conn.sendError(action, err.Error())
		return nil
	default:
		conn.sendError(action, "internal error")
		return err
	}
}
