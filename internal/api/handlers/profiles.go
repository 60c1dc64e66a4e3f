package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankshot/backend/internal/config"
	"github.com/bankshot/backend/internal/profiles"
	"github.com/bankshot/backend/internal/trace"
)

// CreateProfileRequest saves a table setup for later recall.
type CreateProfileRequest struct {
	Name             string  `json:"name" binding:"required"`
	Left             float64 `json:"left"`
	Top              float64 `json:"top"`
	Right            float64 `json:"right"`
	Bottom           float64 `json:"bottom"`
	MaxBounces       int     `json:"max_bounces"`
	LengthMultiplier float64 `json:"length_multiplier"`
}

// ListProfiles returns all saved table profiles.
func ListProfiles(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := profiles.List(db)
		if err != nil {
			log.Printf("[PROFILES] List failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profiles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profiles": out})
	}
}

// GetProfile returns one saved profile by id.
func GetProfile(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
			return
		}

		p, err := profiles.Get(db, id)
		if err == profiles.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		if err != nil {
			log.Printf("[PROFILES] Get %d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": p})
	}
}

// CreateProfile saves a named table setup.
func CreateProfile(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and boundary required"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" || len(name) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile name"})
			return
		}

		b := trace.Boundary{Left: req.Left, Top: req.Top, Right: req.Right, Bottom: req.Bottom}
		if !b.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "boundary must have positive width and height"})
			return
		}

		maxBounces := req.MaxBounces
		if maxBounces < 0 {
			maxBounces = 0
		}
		if maxBounces > trace.MaxBounceLimit {
			maxBounces = trace.MaxBounceLimit
		}
		multiplier := req.LengthMultiplier
		if multiplier <= 0 {
			multiplier = trace.DefaultLengthMultiplier
		}

		p, err := profiles.Create(db, profiles.Profile{
			Name:             name,
			Left:             req.Left,
			Top:              req.Top,
			Right:            req.Right,
			Bottom:           req.Bottom,
			MaxBounces:       maxBounces,
			LengthMultiplier: multiplier,
		})
		if err != nil {
			log.Printf("[PROFILES] Create %q failed: %v", name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"profile": p})
	}
}

// DeleteProfile removes a saved profile. Destructive, so it requires
// the admin key (compared against the bcrypt hash from config).
func DeleteProfile(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminKeyHash == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin key not configured"})
			return
		}
		key := c.GetHeader("X-Admin-Key")
		if key == "" || bcrypt.CompareHashAndPassword([]byte(cfg.AdminKeyHash), []byte(key)) != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin key"})
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
			return
		}

		if err := profiles.Delete(db, id); err == profiles.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		} else if err != nil {
			log.Printf("[PROFILES] Delete %d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
