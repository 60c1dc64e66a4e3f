package trace

// PointKind annotates what terminated or redirected the path at a point.
type PointKind string

const (
	KindNone        PointKind = ""
	KindBounce      PointKind = "bounce"
	KindObstacleHit PointKind = "obstacle_hit"
)

// PathPoint is one point of a predicted path. The first point of a path
// is always the unannotated ray origin; an obstacle_hit annotation only
// ever appears on the last point.
type PathPoint struct {
	Position   Vec2      `json:"position"`
	Kind       PointKind `json:"kind,omitempty"`
	ObstacleID int       `json:"obstacle_id,omitempty"`
}

// Path is one predicted trajectory for a fixed bounce budget.
type Path struct {
	Level  int         `json:"level"`
	Points []PathPoint `json:"points"`
}

// Bounces counts the bounce-annotated points of the path.
func (p Path) Bounces() int {
	n := 0
	for _, pt := range p.Points {
		if pt.Kind == KindBounce {
			n++
		}
	}
	return n
}

// Terminal returns the last point of the path.
func (p Path) Terminal() PathPoint {
	return p.Points[len(p.Points)-1]
}

// traceState is the per-step accumulator. Each step produces a fresh
// value instead of mutating fields in place, so traces for multiple
// bounce levels can run over a shared obstacle list without aliasing.
type traceState struct {
	pos       Vec2
	dir       Direction
	remaining float64
	bounces   int
}

// TracePath walks a ray through the boundary, reflecting off walls
// until the bounce budget or the distance budget runs out, or an
// obstacle is struck. Termination rules:
//
//   - an obstacle strike ends the path at the strike point (no bounces
//     are predicted past a collision);
//   - a wall reached with bounce budget left adds a bounce point,
//     reflects the direction and continues;
//   - a wall reached with the bounce budget exhausted ends the path AT
//     the wall with an unannotated terminal point, so a 0-bounce trace
//     is a direct shot that stops on the first wall it meets;
//   - no event within the distance budget ends the path at the full
//     budget along the current direction.
func TracePath(b Boundary, origin Vec2, dir Direction, maxBounces int, budget float64, obstacles []Obstacle, excludeID int) Path {
	points := []PathPoint{{Position: origin}}
	st := traceState{pos: origin, dir: dir, remaining: budget}

	for st.remaining > 0 {
		oHit := NearestObstacleHit(obstacles, excludeID, st.pos, st.dir, st.remaining)
		wHit := b.NearestWallHit(st.pos, st.dir, st.remaining)

		switch {
		case oHit != nil && (wHit == nil || oHit.Distance <= wHit.Distance):
			points = append(points, PathPoint{
				Position:   oHit.Point,
				Kind:       KindObstacleHit,
				ObstacleID: oHit.ObstacleID,
			})
			return Path{Level: maxBounces, Points: points}

		case wHit != nil && st.bounces < maxBounces:
			points = append(points, PathPoint{Position: wHit.Point, Kind: KindBounce})
			st = traceState{
				pos:       wHit.Point,
				dir:       Reflect(st.dir, wHit.Wall),
				remaining: fix(st.remaining - wHit.Distance),
				bounces:   st.bounces + 1,
			}

		case wHit != nil:
			points = append(points, PathPoint{Position: wHit.Point})
			return Path{Level: maxBounces, Points: points}

		default:
			points = append(points, PathPoint{
				Position: st.pos.Plus(st.dir.Vec().Times(st.remaining)),
			})
			return Path{Level: maxBounces, Points: points}
		}
	}

	return Path{Level: maxBounces, Points: points}
}
