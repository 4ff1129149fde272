package chat

import (
	"github.com/gorilla/websocket"
)

// Client represents one live WebSocket connection. A connection belongs to
// no room until the peer sends joinRoom; room membership lives in the
// Registry, not here.
type Client struct {
	ConnID string          // unique connection ID, assigned at upgrade time
	WS     *websocket.Conn // underlying connection
	Send   chan []byte     // outbound queue, consumed by a single writer goroutine

	done chan struct{} // closed when the read loop exits; stops the writer
}

// NewClient creates a new client connection object.
func NewClient(connID string, ws *websocket.Conn, sendQueueSize int) *Client {
	return &Client{
		ConnID: connID,
		WS:     ws,
		Send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}
