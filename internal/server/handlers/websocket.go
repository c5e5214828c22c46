// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// WebSocketClient represents a connected trend feed subscriber
type WebSocketClient struct {
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	categories map[string]bool
	natsSub    *nats.Subscription
	closeOnce  sync.Once
	logger     *zap.Logger
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4096,
	}
}

// WebSocketUpgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// TrendWebSocketHandler streams detected trends to dashboard clients.
// Clients can narrow the feed with a comma-separated categories query
// parameter.
func TrendWebSocketHandler(natsConn *nats.Conn, eventsTopic string, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		categories := map[string]bool{}
		for _, c := range splitParam(r.URL.Query().Get("categories")) {
			categories[c] = true
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &WebSocketClient{
			conn:       conn,
			send:       make(chan []byte, 256),
			done:       make(chan struct{}),
			categories: categories,
			logger:     logger,
		}

		subject := fmt.Sprintf("%s.detected", eventsTopic)
		sub, err := natsConn.Subscribe(subject, func(msg *nats.Msg) {
			if !client.wants(msg.Data) {
				return
			}
			select {
			case client.send <- msg.Data:
			default:
				// Slow consumer, drop the update
			}
		})
		if err != nil {
			logger.Error("failed to subscribe to trend events", zap.Error(err))
			conn.Close()
			return
		}
		client.natsSub = sub

		go client.writePump()
		go client.readPump()

		welcome := map[string]interface{}{
			"type":  "welcome",
			"topic": subject,
			"time":  time.Now(),
		}
		welcomeJSON, _ := json.Marshal(welcome)
		client.send <- welcomeJSON

		logger.Info("trend feed client connected",
			zap.String("remote", r.RemoteAddr),
			zap.Int("categories", len(categories)))
	}
}

// wants reports whether the event passes the client's category filter.
func (c *WebSocketClient) wants(data []byte) bool {
	if len(c.categories) == 0 {
		return true
	}

	var event struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return true
	}
	return c.categories[event.Category]
}

// readPump consumes client frames so ping/pong keepalive works. The
// feed is one-way, inbound payloads are discarded.
func (c *WebSocketClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}
	}
}

// writePump pumps trend events to the WebSocket connection
func (c *WebSocketClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued events to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// closeConnection closes the WebSocket connection and cleans up
// resources. Closing done releases the write pump immediately instead
// of leaving it parked until the next ping.
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		if c.natsSub != nil {
			c.natsSub.Unsubscribe()
		}
		close(c.done)
		c.conn.Close()
	})
}
