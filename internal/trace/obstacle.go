package trace

// NoObstacle is the excludeID value meaning no obstacle is exempt from
// the ray.
const NoObstacle = -1

// Obstacle is a circular body the traced ray may strike before reaching
// a wall. Striking an obstacle always terminates the path.
type Obstacle struct {
	ID     int     `json:"id"`
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

// ObstacleHit is the nearest obstacle strike along a ray.
type ObstacleHit struct {
	Point      Vec2
	ObstacleID int
	Distance   float64
}

// NearestObstacleHit finds the closest obstacle struck by the ray from
// pos in dir within the remaining distance budget. The obstacle with
// ID == excludeID is skipped, so a ray traced from a body's own center
// does not immediately strike itself (pass NoObstacle to test all).
//
// A strike is registered when the perpendicular distance from an
// obstacle's center to the ray is under twice the obstacle radius
// (two touching bodies of nominal radius), at the ray's closest
// approach to the center. Obstacles behind the ray are ignored.
func NearestObstacleHit(obstacles []Obstacle, excludeID int, pos Vec2, dir Direction, remaining float64) *ObstacleHit {
	var best *ObstacleHit

	for i := range obstacles {
		o := &obstacles[i]
		if o.ID == excludeID {
			continue
		}

		projection := o.Center.Minus(pos).Dot(dir.Vec())
		if projection <= 0 || projection >= remaining {
			continue
		}

		closest := pos.Plus(dir.Vec().Times(projection))
		if o.Center.Minus(closest).Magnitude() >= 2*o.Radius {
			continue
		}

		if best == nil || projection < best.Distance {
			best = &ObstacleHit{Point: closest, ObstacleID: o.ID, Distance: projection}
		}
	}

	return best
}
