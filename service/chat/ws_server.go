package chat

import (
	"net"
	"net/http"
	"time"

	"LandokProject/logger"
	"LandokProject/tools/ids"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 20 // 1MB
	readWait     = 60 * time.Second
	writeWait    = 5 * time.Second
	pingInterval = 30 * time.Second
)

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}
}

// HandleWS upgrades the request and runs the connection's read loop until
// the peer goes away. Writes happen only on the client's writer goroutine.
func (s *Server) HandleWS(c *gin.Context) {
	up := s.upgrader()
	ws, err := up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed: %v", err)
		return
	}

	connID := ids.GenerateString()
	cli := NewClient(connID, ws, s.conf.SendQueueSize)
	s.registry.Add(cli)
	logger.Infof("[ws] client connected connID=%s remote=%s", connID, ws.RemoteAddr())

	go s.writeLoop(cli)

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[ws] peer closed connID=%s", connID)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[ws] read timeout connID=%s err=%v", connID, rerr)
			} else {
				logger.Infof("[ws] read err connID=%s err=%v", connID, rerr)
			}
			break
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrameJSON(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Infof("[ws] bad frame connID=%s err=%v sample=%q", connID, perr, sample)
			continue
		}

		if derr := s.disp.Dispatch(&Context{S: s}, frame, cli); derr != nil {
			logger.Infof("[ws] dispatch event=%s connID=%s err=%v", frame.Event, connID, derr)
		}
	}

	// Disconnect: drop the record and every room membership right away,
	// then stop the writer. No grace period, no session resumption.
	s.registry.Remove(connID)
	close(cli.done)
	logger.Infof("[ws] client disconnected connID=%s", connID)
}

func (s *Server) writeLoop(cli *Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = cli.WS.SetWriteDeadline(time.Now().Add(writeWait))
		_ = cli.WS.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = cli.WS.Close()
	}()

	for {
		select {
		case <-cli.done:
			return
		case payload := <-cli.Send:
			_ = cli.WS.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cli.WS.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Infof("[ws] write err connID=%s err=%v", cli.ConnID, err)
				return
			}
		case <-ticker.C:
			if err := cli.WS.WriteControl(websocket.PingMessage, []byte("ping"),
				time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
