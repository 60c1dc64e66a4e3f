package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"

	"github.com/bankshot/backend/internal/config"
	"github.com/bankshot/backend/internal/overlay"
	"github.com/bankshot/backend/internal/trace"
)

// CreateSessionRequest starts one overlay session. screen is required
// for desktop mode only; max_bounces and length_multiplier fall back to
// the configured defaults when omitted.
type CreateSessionRequest struct {
	Mode             string          `json:"mode" binding:"required"`
	Screen           *trace.Boundary `json:"screen,omitempty"`
	MaxBounces       *int            `json:"max_bounces,omitempty"`
	LengthMultiplier *float64        `json:"length_multiplier,omitempty"`
}

func sessionStore(rdb *redis.Client, cfg *config.Config) *overlay.Store {
	return overlay.NewStore(rdb, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
}

// signSessionToken issues the HS256 JWT an overlay shell presents when
// opening its WebSocket.
func signSessionToken(cfg *config.Config, sessionToken string) (string, error) {
	exp := time.Now().Add(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	claims := jwt.MapClaims{"session": sessionToken, "exp": exp.Unix()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// CreateSession creates an overlay session for one of the three shell
// modes and returns its token plus the signed WebSocket credential.
func CreateSession(rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
			return
		}

		settings := overlay.Settings{
			MaxBounces:       cfg.DefaultMaxBounces,
			LengthMultiplier: cfg.DefaultLengthMultiplier,
		}
		if req.MaxBounces != nil {
			settings.MaxBounces = *req.MaxBounces
		}
		if req.LengthMultiplier != nil {
			settings.LengthMultiplier = *req.LengthMultiplier
		}

		token := generateSessionToken()
		session, err := overlay.NewSession(token, overlay.Mode(req.Mode), req.Screen, settings)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		store := sessionStore(rdb, cfg)
		if err := store.Save(c.Request.Context(), session); err != nil {
			log.Printf("[SESSION] Failed to save session %s: %v", token, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		signed, err := signSessionToken(cfg, token)
		if err != nil {
			log.Printf("[SESSION] Failed to sign token for %s: %v", token, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		log.Printf("[SESSION] Created session %s (mode=%s)", token, session.Mode)
		c.JSON(http.StatusCreated, gin.H{
			"token":        token,
			"access_token": signed,
			"session":      session,
		})
	}
}

// GetSession returns the current state of a session.
func GetSession(rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessionStore(rdb, cfg)
		session, err := store.Load(c.Request.Context(), c.Param("token"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session":    session,
			"calibrated": session.Calibrated(),
		})
	}
}

// DeleteSession ends a session early (the TTL would reap it anyway).
func DeleteSession(rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := sessionStore(rdb, cfg)
		token := c.Param("token")
		if err := store.Delete(c.Request.Context(), token); err != nil {
			log.Printf("[SESSION] Failed to delete session %s: %v", token, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
