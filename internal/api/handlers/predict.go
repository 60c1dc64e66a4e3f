package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankshot/backend/internal/overlay"
	"github.com/bankshot/backend/internal/trace"
)

// PredictRequest is the one-shot prediction body. Obstacles and
// exclude_id are optional; exclude_id defaults to "exclude nothing".
type PredictRequest struct {
	Boundary         trace.Boundary   `json:"boundary"`
	Origin           trace.Vec2       `json:"origin"`
	Target           trace.Vec2       `json:"target"`
	MaxBounces       int              `json:"max_bounces"`
	LengthMultiplier float64          `json:"length_multiplier"`
	Obstacles        []trace.Obstacle `json:"obstacles,omitempty"`
	ExcludeID        *int             `json:"exclude_id,omitempty"`
}

// PredictOnce computes a prediction set for a stateless request, for
// shells that don't hold a session (scripted captures, tests, the
// profile preview in the desktop overlay).
func PredictOnce() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		// Boundary validation is a setup-time concern: reject here so
		// the engine never sees a violated rectangle invariant.
		if !req.Boundary.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "boundary must have positive width and height"})
			return
		}

		exclude := trace.NoObstacle
		if req.ExcludeID != nil {
			exclude = *req.ExcludeID
		}

		dir := trace.ComputeDirection(req.Origin, req.Target)
		if dir.Degenerate() {
			// Not an error: "no aim" simply draws nothing this frame
			c.JSON(http.StatusOK, gin.H{"skipped": true, "paths": []trace.Path{}, "styles": []overlay.LevelStyle{}})
			return
		}

		set := trace.PredictAim(req.Boundary, req.Origin, dir,
			req.MaxBounces, req.LengthMultiplier, req.Obstacles, exclude)

		c.JSON(http.StatusOK, gin.H{
			"skipped": false,
			"paths":   set.Paths,
			"styles":  overlay.StylesFor(set),
		})
	}
}
