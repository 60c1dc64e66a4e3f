package trace

import "math"

// Boundary is the axis-aligned rectangle of reflecting edges around the
// playing surface. Invariant: Right > Left and Bottom > Top. The shells
// validate this at setup time (boundary calibration); the engine does
// not defend against a violated invariant.
type Boundary struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// BoundaryFromCorners builds a Boundary from two opposite corner points
// in any click order, normalizing so the rectangle invariant holds.
func BoundaryFromCorners(a, b Vec2) Boundary {
	return Boundary{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
}

// Valid reports whether the rectangle invariant holds.
func (b Boundary) Valid() bool {
	return b.Right > b.Left && b.Bottom > b.Top
}

func (b Boundary) Width() float64 {
	return b.Right - b.Left
}

func (b Boundary) Height() float64 {
	return b.Bottom - b.Top
}

// Diagonal is the corner-to-corner length, used to size trace budgets.
func (b Boundary) Diagonal() float64 {
	return fix(math.Hypot(b.Width(), b.Height()))
}

// Contains reports whether a point lies inside or on the boundary.
func (b Boundary) Contains(p Vec2) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// WallHit is the nearest crossing of a boundary edge along a ray.
type WallHit struct {
	Point    Vec2
	Wall     Wall
	Distance float64
}

// NearestWallHit finds the closest boundary-edge crossing along the ray
// from pos in dir, within the remaining distance budget. Each edge is
// only tested when the direction component points toward it, and a
// candidate only qualifies when the crossing falls within the edge's
// finite extent. Edges are tested in the fixed order left, right, top,
// bottom; on a numerically exact corner tie the earlier edge is kept,
// which makes the arbitrary choice deterministic. Returns nil when no
// edge is reachable within the budget.
func (b Boundary) NearestWallHit(pos Vec2, dir Direction, remaining float64) *WallHit {
	var best *WallHit

	consider := func(t float64, p Vec2, w Wall) {
		if t <= 0 || t >= remaining {
			return
		}
		if best != nil && t >= best.Distance {
			return
		}
		best = &WallHit{Point: p, Wall: w, Distance: t}
	}

	if dir.DX < 0 {
		t := fix((b.Left - pos.X) / dir.DX)
		y := fix(pos.Y + dir.DY*t)
		if y >= b.Top && y <= b.Bottom {
			consider(t, Vec2{X: b.Left, Y: y}, WallLeft)
		}
	}
	if dir.DX > 0 {
		t := fix((b.Right - pos.X) / dir.DX)
		y := fix(pos.Y + dir.DY*t)
		if y >= b.Top && y <= b.Bottom {
			consider(t, Vec2{X: b.Right, Y: y}, WallRight)
		}
	}
	if dir.DY < 0 {
		t := fix((b.Top - pos.Y) / dir.DY)
		x := fix(pos.X + dir.DX*t)
		if x >= b.Left && x <= b.Right {
			consider(t, Vec2{X: x, Y: b.Top}, WallTop)
		}
	}
	if dir.DY > 0 {
		t := fix((b.Bottom - pos.Y) / dir.DY)
		x := fix(pos.X + dir.DX*t)
		if x >= b.Left && x <= b.Right {
			consider(t, Vec2{X: x, Y: b.Bottom}, WallBottom)
		}
	}

	return best
}
