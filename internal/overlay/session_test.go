package overlay

import (
	"testing"

	"github.com/bankshot/backend/internal/trace"
)

func TestNewSimulatorSessionIsReady(t *testing.T) {
	s, err := NewSession("OVL_TEST1", ModeSimulator, nil, Settings{})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if !s.Calibrated() {
		t.Error("Simulator session should be calibrated immediately")
	}
	if len(s.Obstacles) != 15 {
		t.Errorf("Expected 15 racked obstacles, got %d", len(s.Obstacles))
	}
	if !s.Boundary.Contains(s.Cue) {
		t.Error("Cue spot should be on the table")
	}
	if s.Settings.MaxBounces != 0 || s.Settings.LengthMultiplier != trace.DefaultLengthMultiplier {
		t.Errorf("Zero settings should normalize, got %+v", s.Settings)
	}
}

func TestNewDesktopSessionRequiresBoundary(t *testing.T) {
	if _, err := NewSession("OVL_TEST2", ModeDesktop, nil, Settings{}); err != ErrBoundaryRequired {
		t.Errorf("Expected ErrBoundaryRequired, got %v", err)
	}

	bad := trace.Boundary{Left: 100, Top: 0, Right: 100, Bottom: 500}
	if _, err := NewSession("OVL_TEST3", ModeDesktop, &bad, Settings{}); err != ErrInvalidBoundary {
		t.Errorf("Expected ErrInvalidBoundary, got %v", err)
	}

	screen := trace.Boundary{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	s, err := NewSession("OVL_TEST4", ModeDesktop, &screen, Settings{MaxBounces: 2, LengthMultiplier: 1.5})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if !s.Calibrated() {
		t.Error("Desktop session should be calibrated at creation")
	}
	if !s.Cue.IsEqualTo(trace.NewVec2(960, 540)) {
		t.Errorf("Cue should default to screen center, got %+v", s.Cue)
	}
}

func TestNewSessionRejectsUnknownMode(t *testing.T) {
	if _, err := NewSession("OVL_TEST5", Mode("vr"), nil, Settings{}); err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestTwoPointCalibrationFlow(t *testing.T) {
	s, err := NewSession("OVL_TEST6", ModeTwoPoint, nil, Settings{})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Calibrated() {
		t.Fatal("Twopoint session must start uncalibrated")
	}

	// Aim frames before calibration draw nothing
	if _, ok := s.PredictFrame(trace.NewVec2(500, 500)); ok {
		t.Error("Uncalibrated session should skip prediction")
	}

	done, err := s.AddCorner(trace.NewVec2(900, 700))
	if err != nil || done {
		t.Fatalf("First corner: done=%v err=%v", done, err)
	}

	// Second corner in the opposite direction; order must not matter
	done, err = s.AddCorner(trace.NewVec2(100, 100))
	if err != nil || !done {
		t.Fatalf("Second corner: done=%v err=%v", done, err)
	}
	if s.Boundary.Left != 100 || s.Boundary.Right != 900 {
		t.Errorf("Unexpected boundary: %+v", *s.Boundary)
	}
}

func TestTwoPointDegenerateCornersReset(t *testing.T) {
	s, _ := NewSession("OVL_TEST7", ModeTwoPoint, nil, Settings{})

	s.AddCorner(trace.NewVec2(100, 100))
	done, err := s.AddCorner(trace.NewVec2(100, 700))
	if err != ErrCornersCollinear {
		t.Fatalf("Expected ErrCornersCollinear, got %v", err)
	}
	if done || s.Calibrated() {
		t.Error("Degenerate corners must not calibrate the session")
	}
	if len(s.Corners) != 0 {
		t.Error("Corner flow should reset so the user can click again")
	}

	// The flow works after the reset
	s.AddCorner(trace.NewVec2(100, 100))
	if done, err := s.AddCorner(trace.NewVec2(800, 600)); err != nil || !done {
		t.Errorf("Retry after reset failed: done=%v err=%v", done, err)
	}
}

func TestAddCornerWrongMode(t *testing.T) {
	s, _ := NewSession("OVL_TEST8", ModeSimulator, nil, Settings{})
	if _, err := s.AddCorner(trace.NewVec2(10, 10)); err != ErrNotTwoPoint {
		t.Errorf("Expected ErrNotTwoPoint, got %v", err)
	}
}

func TestSetCueValidation(t *testing.T) {
	s, _ := NewSession("OVL_TEST9", ModeSimulator, nil, Settings{})

	if err := s.SetCue(trace.NewVec2(5, 5)); err != ErrCueOutside {
		t.Errorf("Expected ErrCueOutside, got %v", err)
	}
	if err := s.SetCue(trace.NewVec2(300, 300)); err != nil {
		t.Errorf("In-bounds cue rejected: %v", err)
	}

	uncal, _ := NewSession("OVL_TEST10", ModeTwoPoint, nil, Settings{})
	if err := uncal.SetCue(trace.NewVec2(300, 300)); err != ErrNotCalibrated {
		t.Errorf("Expected ErrNotCalibrated, got %v", err)
	}
}

func TestApplySettingsClamps(t *testing.T) {
	s, _ := NewSession("OVL_TEST11", ModeSimulator, nil, Settings{})

	s.ApplySettings(Settings{MaxBounces: 99, LengthMultiplier: -3})
	if s.Settings.MaxBounces != trace.MaxBounceLimit {
		t.Errorf("MaxBounces not clamped: %d", s.Settings.MaxBounces)
	}
	if s.Settings.LengthMultiplier != trace.DefaultLengthMultiplier {
		t.Errorf("LengthMultiplier not defaulted: %.2f", s.Settings.LengthMultiplier)
	}
}

func TestPredictFrameSkipsDegenerateAim(t *testing.T) {
	s, _ := NewSession("OVL_TEST12", ModeSimulator, nil, Settings{MaxBounces: 2, LengthMultiplier: 2})

	if _, ok := s.PredictFrame(s.Cue); ok {
		t.Error("Aiming at the cue itself should skip the frame")
	}
	set, ok := s.PredictFrame(trace.NewVec2(560, 300))
	if !ok {
		t.Fatal("Valid aim frame should produce a prediction")
	}
	if len(set.Paths) != 3 {
		t.Errorf("Expected 3 paths for max_bounces=2, got %d", len(set.Paths))
	}
}

func TestSimulatorAimAtRackHitsApexBall(t *testing.T) {
	s, _ := NewSession("OVL_TEST13", ModeSimulator, nil, Settings{MaxBounces: 1, LengthMultiplier: 2})

	// Straight shot down the center line at the rack
	set, ok := s.PredictFrame(trace.NewVec2(560, 300))
	if !ok {
		t.Fatal("Expected a prediction")
	}
	for i, p := range set.Paths {
		terminal := p.Terminal()
		if terminal.Kind != trace.KindObstacleHit {
			t.Errorf("Level %d should strike the rack, got %q", i, terminal.Kind)
			continue
		}
		if terminal.ObstacleID != 1 {
			t.Errorf("Level %d should strike the apex ball first, got ball %d", i, terminal.ObstacleID)
		}
	}
}

func TestSimulatorCueSelfExclusion(t *testing.T) {
	s, _ := NewSession("OVL_TEST14", ModeSimulator, nil, Settings{MaxBounces: 0, LengthMultiplier: 2})

	// Aim away from the rack: without self-exclusion the trace would
	// immediately strike the cue ball at its own origin.
	set, ok := s.PredictFrame(trace.NewVec2(100, 300))
	if !ok {
		t.Fatal("Expected a prediction")
	}
	terminal := set.Paths[0].Terminal()
	if terminal.Kind == trace.KindObstacleHit && terminal.ObstacleID == CueID {
		t.Error("Trace struck the cue ball it originates from")
	}
}
