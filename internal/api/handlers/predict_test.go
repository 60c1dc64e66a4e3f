package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bankshot/backend/internal/overlay"
	"github.com/bankshot/backend/internal/trace"
)

type predictResponse struct {
	Skipped bool                 `json:"skipped"`
	Paths   []trace.Path         `json:"paths"`
	Styles  []overlay.LevelStyle `json:"styles"`
	Error   string               `json:"error"`
}

func performPredict(t *testing.T, body interface{}) (*httptest.ResponseRecorder, predictResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/predict", PredictOnce())

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp predictResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
	}
	return w, resp
}

func TestPredictOnceReturnsPathsAndStyles(t *testing.T) {
	w, resp := performPredict(t, PredictRequest{
		Boundary:         trace.Boundary{Left: 30, Top: 30, Right: 770, Bottom: 570},
		Origin:           trace.NewVec2(100, 300),
		Target:           trace.NewVec2(770, 300),
		MaxBounces:       2,
		LengthMultiplier: 2,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp.Skipped {
		t.Fatal("Valid aim should not be skipped")
	}
	if len(resp.Paths) != 3 {
		t.Errorf("Expected 3 paths for max_bounces=2, got %d", len(resp.Paths))
	}
	if len(resp.Styles) != len(resp.Paths) {
		t.Errorf("Styles (%d) should align with paths (%d)", len(resp.Styles), len(resp.Paths))
	}
	if resp.Styles[0].Dashed {
		t.Error("Direct-shot style should not be dashed")
	}
}

func TestPredictOnceRejectsInvalidBoundary(t *testing.T) {
	w, _ := performPredict(t, PredictRequest{
		Boundary: trace.Boundary{Left: 770, Top: 30, Right: 30, Bottom: 570},
		Origin:   trace.NewVec2(100, 300),
		Target:   trace.NewVec2(500, 300),
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for inverted boundary, got %d", w.Code)
	}
}

func TestPredictOnceSkipsDegenerateAim(t *testing.T) {
	w, resp := performPredict(t, PredictRequest{
		Boundary: trace.Boundary{Left: 30, Top: 30, Right: 770, Bottom: 570},
		Origin:   trace.NewVec2(400, 300),
		Target:   trace.NewVec2(400, 300),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Degenerate aim is not an error, got %d", w.Code)
	}
	if !resp.Skipped {
		t.Error("Expected skipped=true for degenerate aim")
	}
	if len(resp.Paths) != 0 {
		t.Errorf("Expected no paths, got %d", len(resp.Paths))
	}
}

func TestPredictOnceWithObstacles(t *testing.T) {
	w, resp := performPredict(t, PredictRequest{
		Boundary:         trace.Boundary{Left: 30, Top: 30, Right: 770, Bottom: 570},
		Origin:           trace.NewVec2(100, 300),
		Target:           trace.NewVec2(770, 300),
		MaxBounces:       1,
		LengthMultiplier: 2,
		Obstacles:        []trace.Obstacle{{ID: 9, Center: trace.NewVec2(400, 300), Radius: 12}},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	for i, p := range resp.Paths {
		last := p.Points[len(p.Points)-1]
		if last.Kind != trace.KindObstacleHit || last.ObstacleID != 9 {
			t.Errorf("Path %d should end on obstacle 9, got kind=%q id=%d", i, last.Kind, last.ObstacleID)
		}
	}
}
