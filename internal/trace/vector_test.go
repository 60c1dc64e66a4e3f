package trace

import (
	"math"
	"testing"
)

func TestDirectionBetweenUnitLength(t *testing.T) {
	d := DirectionBetween(NewVec2(100, 300), NewVec2(770, 300))

	if d.DX != 1 || d.DY != 0 {
		t.Errorf("Expected unit direction (1,0), got (%.4f,%.4f)", d.DX, d.DY)
	}
	if d.Length != 670 {
		t.Errorf("Expected length 670, got %.4f", d.Length)
	}

	d = DirectionBetween(NewVec2(0, 0), NewVec2(300, 400))
	mag := math.Hypot(d.DX, d.DY)
	if math.Abs(mag-1) > 0.001 {
		t.Errorf("Direction not unit length: %.4f", mag)
	}
	if d.Length != 500 {
		t.Errorf("Expected length 500, got %.4f", d.Length)
	}
}

func TestDirectionBetweenSamePoint(t *testing.T) {
	d := DirectionBetween(NewVec2(100, 100), NewVec2(100, 100))
	if d.Length != 0 {
		t.Errorf("Expected zero length for identical points, got %.4f", d.Length)
	}
	if !d.Degenerate() {
		t.Error("Zero-length direction should be degenerate")
	}
}

func TestDirectionDegenerateThreshold(t *testing.T) {
	// Just under the epsilon: unusable aim
	d := DirectionBetween(NewVec2(0, 0), NewVec2(AimEpsilon-1, 0))
	if !d.Degenerate() {
		t.Errorf("Direction of length %.0f should be degenerate", AimEpsilon-1)
	}

	// At the epsilon: usable
	d = DirectionBetween(NewVec2(0, 0), NewVec2(AimEpsilon, 0))
	if d.Degenerate() {
		t.Errorf("Direction of length %.0f should not be degenerate", AimEpsilon)
	}
}

func TestReflectHorizontalEdge(t *testing.T) {
	d := Direction{DX: 0.6, DY: -0.8, Length: 100}

	r := Reflect(d, WallTop)
	if r.DX != 0.6 || r.DY != 0.8 {
		t.Errorf("Top wall reflection wrong: (%.4f,%.4f)", r.DX, r.DY)
	}
	if r.Length != d.Length {
		t.Errorf("Reflection changed length: %.4f", r.Length)
	}
}

func TestReflectVerticalEdge(t *testing.T) {
	d := Direction{DX: 0.6, DY: -0.8, Length: 100}

	r := Reflect(d, WallRight)
	if r.DX != -0.6 || r.DY != -0.8 {
		t.Errorf("Right wall reflection wrong: (%.4f,%.4f)", r.DX, r.DY)
	}
}

func TestReflectRoundTrip(t *testing.T) {
	dirs := []Direction{
		{DX: 1, DY: 0, Length: 50},
		{DX: 0, DY: -1, Length: 200},
		{DX: 0.7071, DY: 0.7071, Length: 123.45},
		{DX: -0.6, DY: 0.8, Length: 1},
	}

	for _, d := range dirs {
		twiceV := Reflect(Reflect(d, WallLeft), WallRight)
		if twiceV != d {
			t.Errorf("Double vertical reflection didn't restore %+v, got %+v", d, twiceV)
		}
		twiceH := Reflect(Reflect(d, WallTop), WallBottom)
		if twiceH != d {
			t.Errorf("Double horizontal reflection didn't restore %+v, got %+v", d, twiceH)
		}
	}
}

func TestWallOrientation(t *testing.T) {
	if WallLeft.Horizontal() || WallRight.Horizontal() {
		t.Error("Side walls should be vertical edges")
	}
	if !WallTop.Horizontal() || !WallBottom.Horizontal() {
		t.Error("Top/bottom walls should be horizontal edges")
	}
}
