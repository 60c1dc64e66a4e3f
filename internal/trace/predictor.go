package trace

const (
	// MaxBounceLimit caps the configurable bounce levels. Anything
	// beyond this draws as visual noise on an overlay.
	MaxBounceLimit = 5

	// DefaultLengthMultiplier scales the boundary diagonal into the
	// per-path distance budget.
	DefaultLengthMultiplier = 2.0
)

// PredictionSet is the collection of predicted paths for one aim
// request, one path per bounce level from 0 to the requested maximum.
// Produced fresh on every call; the engine keeps nothing between
// invocations.
type PredictionSet struct {
	Paths []Path `json:"paths"`
}

// Empty reports whether the set holds no paths (degenerate aim).
func (s PredictionSet) Empty() bool {
	return len(s.Paths) == 0
}

// ComputeDirection derives the aim direction from an origin and a
// target point. The result is meaningless when Length < AimEpsilon;
// callers treat that as "no aim this frame" and skip prediction.
func ComputeDirection(origin, target Vec2) Direction {
	return DirectionBetween(origin, target)
}

// Predict computes the full prediction set for an aim from origin
// toward target. A degenerate aim yields an empty set.
func Predict(b Boundary, origin, target Vec2, maxBounces int, lengthMultiplier float64, obstacles []Obstacle, excludeID int) PredictionSet {
	return PredictAim(b, origin, ComputeDirection(origin, target), maxBounces, lengthMultiplier, obstacles, excludeID)
}

// PredictAim computes one path per bounce level for an already-derived
// aim direction. Every level is traced independently with a shared
// distance budget of Diagonal × lengthMultiplier; a longer level does
// not reuse a shorter level's points, since obstacle checks apply to
// the whole path rather than per bounce.
func PredictAim(b Boundary, origin Vec2, dir Direction, maxBounces int, lengthMultiplier float64, obstacles []Obstacle, excludeID int) PredictionSet {
	if dir.Degenerate() {
		return PredictionSet{}
	}
	if maxBounces < 0 {
		maxBounces = 0
	}
	if maxBounces > MaxBounceLimit {
		maxBounces = MaxBounceLimit
	}
	if lengthMultiplier <= 0 {
		lengthMultiplier = DefaultLengthMultiplier
	}

	budget := fix(b.Diagonal() * lengthMultiplier)
	paths := make([]Path, 0, maxBounces+1)
	for level := 0; level <= maxBounces; level++ {
		paths = append(paths, TracePath(b, origin, dir, level, budget, obstacles, excludeID))
	}
	return PredictionSet{Paths: paths}
}
