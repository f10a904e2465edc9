package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// client wraps one connection. Writes come from the read loop and from delayed AI turns,
// so they go through writeMu.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &client{conn: conn}
}

func (that *client) read() (int, []byte, error) {
	return that.conn.ReadMessage()
}

func (that *client) send(message Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

	return that.conn.WriteJSON(message)
}

func (that *client) sendError(action, reason string) {
	_ = that.send(newMessage(actionError, ErrorPayload{Action: action, Error: reason}))
}

// keepAlive - pings the client until ctx is done, then closes the connection.
func (that *client) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			that.close()
			return
		case <-ticker.C:
			that.writeMu.Lock()
			err := that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			that.writeMu.Unlock()

			if err != nil {
				return
			}
		}
	}
}

func (that *client) close() {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.conn.Close()
}
