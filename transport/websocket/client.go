package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Client is one live connection: the socket, its stable id for the whole
// socket lifetime and the buffered outbound channel drained by writePump.
// done is closed by the hub on removal; send itself is never closed because
// a concurrent broadcast may still hold it.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// readPump reads inbound messages and hands them to the server one at a
// time, which keeps per-connection event order. It exits on any read error;
// the caller treats that as the disconnect.
func (that *Client) readPump(server *Server) {
	defer func() {
		_ = that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := that.conn.ReadMessage()
		if err != nil {
			return
		}

		server.dispatch(that, raw)
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings. It exits with a close frame when the hub
// signals removal through done.
func (that *Client) writePump(logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Debug("failed to write message", "playerID", that.id, "error", err)
				return
			}

		case <-that.done:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
