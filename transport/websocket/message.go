package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/transport/view"
)

const (
	actionNew    = "round:new"
	actionState  = "round:state"
	actionTurn   = "round:turn"
	actionNext   = "round:next"
	actionAITurn = "round:ai-turn"
	actionError  = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type NewRoundPayload struct {
	Mark string `json:"mark,omitempty"`
	Tier string `json:"tier,omitempty"`
}

type RoundPayload struct {
	ID string `json:"id"`
}

type TurnPayload struct {
	ID  string `json:"id"`
	Row *int   `json:"row"`
	Col *int   `json:"col"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

type RoundResponse struct {
	Round view.Round `json:"round"`
}

func newMessage(action string, payload any) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		data, _ = json.Marshal(ErrorPayload{Action: action, Error: err.Error()})
		action = actionError
	}

	return Message{Action: action, Payload: data}
}
