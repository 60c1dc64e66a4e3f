package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"

	"github.com/bankshot/backend/internal/overlay"
	"github.com/bankshot/backend/internal/trace"
)

// Overlay message payloads
type AimData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CornerData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CueData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SettingsData struct {
	MaxBounces       int     `json:"max_bounces"`
	LengthMultiplier float64 `json:"length_multiplier"`
}

// OverlayHub is the single hub for all overlay sessions.
var OverlayHub *Hub

func init() {
	OverlayHub = NewHub()
	go runOverlayHub(OverlayHub)
}

// parseSessionToken validates a signed session JWT and extracts the
// session token claim.
func parseSessionToken(signed string) (string, error) {
	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
		}
		return []byte(wsConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	session, _ := claims["session"].(string)
	if session == "" {
		return "", fmt.Errorf("token has no session claim")
	}
	return session, nil
}

// HandleWebSocket upgrades an overlay shell connection. The client
// authenticates with the signed token from POST /session.
func HandleWebSocket(c *gin.Context) {
	signed := c.Query("token")
	if signed == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	if wsConfig == nil || sessionStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "websocket layer not initialized"})
		return
	}

	token, err := parseSessionToken(signed)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid session token"})
		return
	}

	session, err := sessionStore.Load(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:         conn,
		sessionToken: token,
		session:      session,
		send:         make(chan []byte, 256),
	}

	OverlayHub.register <- client

	go client.writePump()
	go client.readPump()
}

// runOverlayHub runs the hub loop: register (replacing a stale
// connection on reconnect) and unregister.
func runOverlayHub(h *Hub) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if oldClient, exists := h.clients[client.sessionToken]; exists {
				log.Printf("[WS] Session %s reconnecting - closing old connection", client.sessionToken)
				if err := oldClient.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"), time.Now().Add(5*time.Second)); err != nil {
					log.Printf("Error writing close control to old client %s: %v", oldClient.sessionToken, err)
				}
				oldClient.conn.Close()
				select {
				case <-oldClient.send:
				default:
					close(oldClient.send)
				}
			}
			h.clients[client.sessionToken] = client
			h.mu.Unlock()

			log.Printf("[WS] Session %s connected (mode=%s)", client.sessionToken, client.session.Mode)
			client.sendState()

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.sessionToken]; ok && cur == client {
				delete(h.clients, client.sessionToken)
				log.Printf("[WS] Session %s disconnected", client.sessionToken)
				select {
				case <-client.send:
				default:
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// readPump reads overlay messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		OverlayHub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error (unexpected) for session %s: %v", c.sessionToken, err)
			} else {
				log.Printf("WebSocket read error for session %s: %v", c.sessionToken, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage dispatches one overlay message.
func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "aim":
		var data AimData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid aim data")
			return
		}
		c.handleAim(data)

	case "set_corner":
		var data CornerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid corner data")
			return
		}
		c.handleSetCorner(data)

	case "set_cue":
		var data CueData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid cue data")
			return
		}
		c.handleSetCue(data)

	case "set_settings":
		var data SettingsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid settings data")
			return
		}
		c.handleSetSettings(data)

	case "get_state":
		c.sendState()

	default:
		c.sendError("Unknown message type")
	}
}

// handleAim runs one prediction frame. Degenerate aims and uncalibrated
// sessions draw nothing, so no reply is sent for them.
func (c *Client) handleAim(data AimData) {
	set, ok := c.session.PredictFrame(trace.NewVec2(data.X, data.Y))
	if !ok {
		return
	}

	c.sendJSON(map[string]interface{}{
		"type":   "prediction_frame",
		"cue":    c.session.Cue,
		"paths":  set.Paths,
		"styles": overlay.StylesFor(set),
	})
}

// handleSetCorner advances the twopoint calibration flow.
func (c *Client) handleSetCorner(data CornerData) {
	done, err := c.session.AddCorner(trace.NewVec2(data.X, data.Y))
	if err != nil {
		c.saveSession()
		c.sendError(err.Error())
		return
	}
	c.saveSession()

	if done {
		c.sendJSON(map[string]interface{}{
			"type":     "boundary_set",
			"boundary": c.session.Boundary,
			"cue":      c.session.Cue,
		})
		return
	}
	c.sendJSON(map[string]interface{}{
		"type":    "corner_added",
		"corners": len(c.session.Corners),
	})
}

// handleSetCue moves the trace origin.
func (c *Client) handleSetCue(data CueData) {
	if err := c.session.SetCue(trace.NewVec2(data.X, data.Y)); err != nil {
		c.sendError(err.Error())
		return
	}
	c.saveSession()

	c.sendJSON(map[string]interface{}{
		"type": "cue_set",
		"cue":  c.session.Cue,
	})
}

// handleSetSettings applies prediction knobs.
func (c *Client) handleSetSettings(data SettingsData) {
	c.session.ApplySettings(overlay.Settings{
		MaxBounces:       data.MaxBounces,
		LengthMultiplier: data.LengthMultiplier,
	})
	c.saveSession()

	c.sendJSON(map[string]interface{}{
		"type":     "settings_applied",
		"settings": c.session.Settings,
	})
}

// sendState sends the full session state.
func (c *Client) sendState() {
	c.sendJSON(map[string]interface{}{
		"type":       "session_state",
		"session":    c.session,
		"calibrated": c.session.Calibrated(),
	})
}

// saveSession persists the session and refreshes its TTL, best-effort.
func (c *Client) saveSession() {
	c.session.Touch()
	if err := sessionStore.Save(context.Background(), c.session); err != nil {
		log.Printf("[WS] Failed to save session %s: %v", c.sessionToken, err)
	}
}
