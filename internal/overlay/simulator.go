package overlay

import "github.com/bankshot/backend/internal/trace"

// Simulator table geometry. The embedded simulator shell renders an
// 800x600 canvas with a 30px rail on every side; coordinates here are
// canvas pixels.
const (
	SimBallRadius = 12.0

	simRailInset    = 30.0
	simCanvasWidth  = 800.0
	simCanvasHeight = 600.0

	// Rack spacing factors: row pitch just over sqrt(3) and a touch of
	// vertical slack so racked balls don't start in contact.
	simRackRowPitch = 1.782
	simRackSlack    = 1.05
)

// SimulatorBoundary returns the reflecting rectangle of the simulator
// table.
func SimulatorBoundary() trace.Boundary {
	return trace.Boundary{
		Left:   simRailInset,
		Top:    simRailInset,
		Right:  simCanvasWidth - simRailInset,
		Bottom: simCanvasHeight - simRailInset,
	}
}

// SimulatorCue returns the cue ball's starting spot on the head string.
func SimulatorCue() trace.Vec2 {
	return trace.NewVec2(215, 300)
}

// SimulatorRack returns the fifteen object balls racked in the standard
// triangle, apex toward the cue, as obstacles for the tracer. Obstacle
// IDs are ball numbers; the cue ball (ID 0) is appended per frame at
// the current cue position and excluded from its own ray.
func SimulatorRack() []trace.Obstacle {
	apexX := 560.0
	centerY := 300.0
	pitch := simRackRowPitch * SimBallRadius
	step := simRackSlack * SimBallRadius

	spot := func(row, offset float64) trace.Vec2 {
		return trace.NewVec2(apexX+row*pitch, centerY+offset*step)
	}

	// Ball numbers follow the usual rack: apex ball up front, the
	// eight in the middle of the third row, corners mixed.
	layout := []struct {
		id          int
		row, offset float64
	}{
		{1, 0, 0},
		{2, 1, 1}, {15, 1, -1},
		{8, 2, 0}, {5, 2, 2}, {10, 2, -2},
		{7, 3, 1}, {4, 3, 3}, {9, 3, -1}, {6, 3, -3},
		{11, 4, 0}, {12, 4, 2}, {13, 4, -2}, {14, 4, 4}, {3, 4, -4},
	}

	rack := make([]trace.Obstacle, 0, len(layout))
	for _, b := range layout {
		rack = append(rack, trace.Obstacle{
			ID:     b.id,
			Center: spot(b.row, b.offset),
			Radius: SimBallRadius,
		})
	}
	return rack
}
