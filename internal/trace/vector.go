package trace

import "math"

// Vec2 is a 2D point/vector in surface coordinates (pixels or any
// consistent unit) with fixed-precision arithmetic so that predicted
// paths serialize identically across runs.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// fix rounds to 4 decimal places.
func fix(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	return math.Round(n*10000) / 10000
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: fix(x), Y: fix(y)}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: fix(v.X + o.X), Y: fix(v.Y + o.Y)}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: fix(v.X - o.X), Y: fix(v.Y - o.Y)}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: fix(v.X * s), Y: fix(v.Y * s)}
}

func (v Vec2) Dot(o Vec2) float64 {
	return fix(v.X*o.X + v.Y*o.Y)
}

func (v Vec2) Magnitude() float64 {
	return fix(math.Hypot(v.X, v.Y))
}

func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) IsEqualTo(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// AimEpsilon is the minimum origin-to-target distance for a usable aim.
// Directions derived from anything shorter are degenerate: the caller
// skips prediction for that frame instead of treating it as an error.
const AimEpsilon = 10.0

// Direction is a unit vector plus the origin-to-target distance it was
// derived from.
type Direction struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Length float64 `json:"length"`
}

// DirectionBetween computes the unit direction from one point toward
// another. A zero distance yields a zero-length Direction; no division
// is attempted.
func DirectionBetween(from, to Vec2) Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := fix(math.Hypot(dx, dy))
	if length == 0 {
		return Direction{}
	}
	return Direction{
		DX:     fix(dx / length),
		DY:     fix(dy / length),
		Length: length,
	}
}

// Degenerate reports whether the direction is too short to aim with.
func (d Direction) Degenerate() bool {
	return d.Length < AimEpsilon
}

// Vec returns the unit components as a Vec2.
func (d Direction) Vec() Vec2 {
	return Vec2{X: d.DX, Y: d.DY}
}

// Wall identifies one of the four boundary edges.
type Wall int

const (
	WallLeft Wall = iota
	WallRight
	WallTop
	WallBottom
)

func (w Wall) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	}
	return "unknown"
}

// Horizontal reports whether the wall is a horizontal edge (top/bottom).
func (w Wall) Horizontal() bool {
	return w == WallTop || w == WallBottom
}

// Reflect applies the mirror law for an axis-aligned reflector: a
// horizontal edge negates the y component, a vertical edge negates the
// x component. Length is preserved.
func Reflect(d Direction, w Wall) Direction {
	if w.Horizontal() {
		return Direction{DX: d.DX, DY: -d.DY, Length: d.Length}
	}
	return Direction{DX: -d.DX, DY: d.DY, Length: d.Length}
}
