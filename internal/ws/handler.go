package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/bankshot/backend/internal/config"
	"github.com/bankshot/backend/internal/overlay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin is checked by the WebSocketCORSCheck middleware
	},
}

// Client is one connected overlay shell. A session has at most one
// client; a reconnect replaces the previous connection.
type Client struct {
	conn         *websocket.Conn
	sessionToken string
	session      *overlay.Session
	send         chan []byte
}

// Hub maintains the set of connected overlay clients.
type Hub struct {
	clients    map[string]*Client // session token -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SendToSession sends a message to the client of a session, if any.
func (h *Hub) SendToSession(token string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, exists := h.clients[token]; exists {
		select {
		case client.send <- data:
			// sent
		default:
			log.Printf("[WS] SendToSession dropped message for session %s (buffer full)", token)
		}
	}
}

// WSMessage is the envelope for all client messages.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Shared wiring set from main at startup.
var (
	wsConfig     *config.Config
	sessionStore *overlay.Store
)

// SetDependencies wires the Redis client and config into the WS layer.
func SetDependencies(rdb *redis.Client, cfg *config.Config) {
	wsConfig = cfg
	sessionStore = overlay.NewStore(rdb, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
}

// writePump writes messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed: connection replaced or cleaned up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for session %s: %v", c.sessionToken, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket ping error for session %s: %v", c.sessionToken, err)
				return
			}
		}
	}
}

// sendError sends an error message to the client.
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	c.send <- data
}

// sendJSON marshals and queues a message for the client.
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message for session %s: %v", c.sessionToken, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] dropped message for session %s (buffer full)", c.sessionToken)
	}
}
