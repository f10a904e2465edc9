package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type memoryRounds struct {
	mu     sync.Mutex
	rounds map[string]entity.Round
}

func (that *memoryRounds) CreateOrUpdate(_ context.Context, round *entity.Round) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.rounds[round.ID] = *round
	return nil
}

func (that *memoryRounds) GetByID(_ context.Context, id string) (*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	round, ok := that.rounds[id]
	if !ok {
		return nil, apperror.ErrRoundNotFound
	}
	return &round, nil
}

func (that *memoryRounds) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	delete(that.rounds, id)
	return nil
}

// startServer - starts a server backed by a real game manager and returns its store and WebSocket URL.
func startServer(t *testing.T) (*memoryRounds, string) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := &memoryRounds{rounds: make(map[string]entity.Round)}
	manager := usecase.NewGameManager(logger, store, usecase.BotStrategies(bot.NewRand(1)))
	server := New(logger, manager, Options{HumanMark: entity.A, Tier: bot.TierMinimax, AIDelay: 10 * time.Millisecond})

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)

	return store, "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
}

func connect(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// dial - starts a server and connects to it.
func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	_, url := startServer(t)

	return connect(t, url)
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(newMessage(action, payload)))
}

func receive(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	return message.Action, message.Payload
}

func receiveRound(t *testing.T, conn *websocket.Conn, action string) RoundResponse {
	t.Helper()

	got, payload := receive(t, conn)
	require.Equal(t, action, got, string(payload))

	var response RoundResponse
	require.NoError(t, json.Unmarshal(payload, &response))

	return response
}

func intPtr(v int) *int {
	return &v
}

func TestServer_RoundFlow(t *testing.T) {
	conn := dial(t)

	// Given: the human starts a round as O, so the computer moves first
	send(t, conn, actionNew, NewRoundPayload{Mark: "O", Tier: "minimax"})

	created := receiveRound(t, conn, actionNew)
	assert.Equal(t, "O", created.Round.Human)
	assert.Equal(t, "X", created.Round.Turn)

	// When: the delay passes
	aiTurn := receiveRound(t, conn, actionAITurn)

	// Then: the computer has placed one X and it is the human's turn
	assert.Equal(t, created.Round.ID, aiTurn.Round.ID)
	assert.Equal(t, "O", aiTurn.Round.Turn)
	assert.Equal(t, 1, countSymbol(aiTurn.Round.Board, "X"))

	// When: the human plays an empty cell
	row, col := firstEmpty(aiTurn.Round.Board)
	send(t, conn, actionTurn, TurnPayload{ID: created.Round.ID, Row: intPtr(row), Col: intPtr(col)})

	// Then: the move is confirmed and the computer answers
	turn := receiveRound(t, conn, actionTurn)
	assert.False(t, turn.Round.Rejected)
	assert.Equal(t, "O", turn.Round.Board[row][col])

	answer := receiveRound(t, conn, actionAITurn)
	assert.Equal(t, 2, countSymbol(answer.Round.Board, "X"))

	// And: state can be fetched again
	send(t, conn, actionState, RoundPayload{ID: created.Round.ID})
	state := receiveRound(t, conn, actionState)
	assert.Equal(t, answer.Round, state.Round)
}

func TestServer_RejectedTurn(t *testing.T) {
	conn := dial(t)

	send(t, conn, actionNew, NewRoundPayload{Mark: "X"})
	created := receiveRound(t, conn, actionNew)
	assert.Equal(t, "minimax", created.Round.Tier)

	// Given: the human takes the centre and the computer answers
	send(t, conn, actionTurn, TurnPayload{ID: created.Round.ID, Row: intPtr(1), Col: intPtr(1)})
	receiveRound(t, conn, actionTurn)
	answer := receiveRound(t, conn, actionAITurn)

	// When: the human plays the centre again
	send(t, conn, actionTurn, TurnPayload{ID: created.Round.ID, Row: intPtr(1), Col: intPtr(1)})

	// Then: the unchanged round comes back flagged as rejected
	rejected := receiveRound(t, conn, actionTurn)
	assert.True(t, rejected.Round.Rejected)
	assert.Equal(t, answer.Round.Board, rejected.Round.Board)

	// And: the next round swaps sides
	send(t, conn, actionNext, RoundPayload{ID: created.Round.ID})
	next := receiveRound(t, conn, actionNext)
	assert.Equal(t, "O", next.Round.Human)
	receiveRound(t, conn, actionAITurn)
}

func TestServer_StateResumesAITurn(t *testing.T) {
	store, url := startServer(t)

	// Given: a stored round where the human plays O and the computer has not moved yet
	session, err := tictactoe.NewSession(entity.B)
	require.NoError(t, err)

	round := &entity.Round{ID: "resumed", Tier: string(bot.TierMinimax), State: session.State(), CreatedAt: time.Now().UTC()}
	require.NoError(t, store.CreateOrUpdate(context.Background(), round))

	// When: a fresh connection asks for the round's state
	conn := connect(t, url)
	send(t, conn, actionState, RoundPayload{ID: round.ID})

	// Then: the state comes back with the computer to move
	state := receiveRound(t, conn, actionState)
	assert.Equal(t, "X", state.Round.Turn)
	assert.Equal(t, 0, countSymbol(state.Round.Board, "X"))

	// And: the computer's move is pushed after the delay
	aiTurn := receiveRound(t, conn, actionAITurn)
	assert.Equal(t, round.ID, aiTurn.Round.ID)
	assert.Equal(t, "O", aiTurn.Round.Turn)
	assert.Equal(t, 1, countSymbol(aiTurn.Round.Board, "X"))

	// And: the human can now play
	row, col := firstEmpty(aiTurn.Round.Board)
	send(t, conn, actionTurn, TurnPayload{ID: round.ID, Row: intPtr(row), Col: intPtr(col)})

	turn := receiveRound(t, conn, actionTurn)
	assert.False(t, turn.Round.Rejected)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	cases := []struct {
		action  string
		payload any
	}{
		{action: "game:unknown", payload: RoundPayload{}},
		{action: actionNew, payload: NewRoundPayload{Tier: "chess"}},
		{action: actionNew, payload: NewRoundPayload{Tier: "learning"}},
		{action: actionState, payload: RoundPayload{ID: "missing"}},
		{action: actionTurn, payload: RoundPayload{ID: "missing"}},
	}

	for _, tc := range cases {
		send(t, conn, tc.action, tc.payload)

		action, payload := receive(t, conn)
		require.Equal(t, actionError, action, tc.action)

		var errPayload ErrorPayload
		require.NoError(t, json.Unmarshal(payload, &errPayload))
		assert.Equal(t, tc.action, errPayload.Action)
		assert.NotEmpty(t, errPayload.Error)
	}
}

func countSymbol(board [entity.Size][entity.Size]string, symbol string) int {
	count := 0
	for _, row := range board {
		for _, cell := range row {
			if cell == symbol {
				count++
			}
		}
	}

	return count
}

func firstEmpty(board [entity.Size][entity.Size]string) (int, int) {
	for r, row := range board {
		for c, cell := range row {
			if cell == "" {
				return r, c
			}
		}
	}

	return -1, -1
}
