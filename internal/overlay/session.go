package overlay

import (
	"errors"
	"time"

	"github.com/bankshot/backend/internal/trace"
)

// Mode selects which shell flow a session follows. All three shells
// share the same prediction engine; they only differ in how the
// boundary and aim arrive.
type Mode string

const (
	// ModeSimulator runs the embedded table simulator: fixed table
	// boundary, racked object balls as obstacles.
	ModeSimulator Mode = "simulator"
	// ModeTwoPoint calibrates the boundary from two corner clicks.
	ModeTwoPoint Mode = "twopoint"
	// ModeDesktop uses the full screen rectangle supplied at creation.
	ModeDesktop Mode = "desktop"
)

// CueID is the obstacle ID reserved for the cue ball.
const CueID = 0

// DefaultMaxBounces is the bounce-level depth a fresh session predicts.
const DefaultMaxBounces = 3

var (
	ErrUnknownMode      = errors.New("unknown session mode")
	ErrBoundaryRequired = errors.New("desktop mode requires a screen boundary")
	ErrInvalidBoundary  = errors.New("boundary must have positive width and height")
	ErrNotCalibrated    = errors.New("session boundary is not calibrated yet")
	ErrCueOutside       = errors.New("cue position is outside the boundary")
	ErrCornersCollinear = errors.New("corner points describe an empty rectangle")
	ErrNotTwoPoint      = errors.New("boundary corners only apply to twopoint sessions")
)

// Settings are the caller-tunable prediction knobs.
type Settings struct {
	MaxBounces       int     `json:"max_bounces"`
	LengthMultiplier float64 `json:"length_multiplier"`
}

// Normalize clamps settings into the supported range.
func (s Settings) Normalize() Settings {
	if s.MaxBounces < 0 {
		s.MaxBounces = 0
	}
	if s.MaxBounces > trace.MaxBounceLimit {
		s.MaxBounces = trace.MaxBounceLimit
	}
	if s.LengthMultiplier <= 0 {
		s.LengthMultiplier = trace.DefaultLengthMultiplier
	}
	return s
}

// Session is one overlay client's calibration state: mode, boundary,
// cue position and settings. It is shell state, not engine state; the
// engine itself stays pure and holds nothing between frames.
type Session struct {
	Token        string           `json:"token"`
	Mode         Mode             `json:"mode"`
	Boundary     *trace.Boundary  `json:"boundary,omitempty"`
	Corners      []trace.Vec2     `json:"corners,omitempty"`
	Cue          trace.Vec2       `json:"cue"`
	Obstacles    []trace.Obstacle `json:"obstacles,omitempty"`
	Settings     Settings         `json:"settings"`
	CreatedAt    time.Time        `json:"created_at"`
	LastActivity time.Time        `json:"last_activity"`
}

// NewSession creates a session for the given shell mode. screen is only
// consulted in desktop mode, where it must be a valid rectangle.
func NewSession(token string, mode Mode, screen *trace.Boundary, settings Settings) (*Session, error) {
	now := time.Now()
	s := &Session{
		Token:        token,
		Mode:         mode,
		Settings:     settings.Normalize(),
		CreatedAt:    now,
		LastActivity: now,
	}

	switch mode {
	case ModeSimulator:
		b := SimulatorBoundary()
		s.Boundary = &b
		s.Cue = SimulatorCue()
		s.Obstacles = SimulatorRack()

	case ModeTwoPoint:
		// Boundary arrives later via two AddCorner calls

	case ModeDesktop:
		if screen == nil {
			return nil, ErrBoundaryRequired
		}
		if !screen.Valid() {
			return nil, ErrInvalidBoundary
		}
		b := *screen
		s.Boundary = &b
		s.Cue = trace.NewVec2((b.Left+b.Right)/2, (b.Top+b.Bottom)/2)

	default:
		return nil, ErrUnknownMode
	}

	return s, nil
}

// Calibrated reports whether the session has a usable boundary.
func (s *Session) Calibrated() bool {
	return s.Boundary != nil
}

// AddCorner records one boundary corner click in twopoint mode. The
// second click completes the rectangle; returns true once calibrated.
// Corners that collapse to a degenerate rectangle reset the flow so the
// user can click again.
func (s *Session) AddCorner(p trace.Vec2) (bool, error) {
	if s.Mode != ModeTwoPoint {
		return s.Calibrated(), ErrNotTwoPoint
	}

	s.Corners = append(s.Corners, p)
	if len(s.Corners) < 2 {
		return false, nil
	}

	b := trace.BoundaryFromCorners(s.Corners[0], s.Corners[1])
	s.Corners = nil
	if !b.Valid() {
		return false, ErrCornersCollinear
	}

	s.Boundary = &b
	s.Cue = trace.NewVec2((b.Left+b.Right)/2, (b.Top+b.Bottom)/2)
	return true, nil
}

// SetCue moves the trace origin. The cue must sit inside the boundary.
func (s *Session) SetCue(p trace.Vec2) error {
	if !s.Calibrated() {
		return ErrNotCalibrated
	}
	if !s.Boundary.Contains(p) {
		return ErrCueOutside
	}
	s.Cue = p
	return nil
}

// ApplySettings replaces the prediction knobs, clamped.
func (s *Session) ApplySettings(settings Settings) {
	s.Settings = settings.Normalize()
}

// Touch updates the activity timestamp (session TTL bookkeeping).
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

// PredictFrame runs one aim frame against the session state. Returns
// ok=false when the session is uncalibrated or the aim is degenerate.
// Both mean "draw nothing this frame", not an error.
func (s *Session) PredictFrame(target trace.Vec2) (trace.PredictionSet, bool) {
	if !s.Calibrated() {
		return trace.PredictionSet{}, false
	}

	dir := trace.ComputeDirection(s.Cue, target)
	if dir.Degenerate() {
		return trace.PredictionSet{}, false
	}

	obstacles := s.Obstacles
	exclude := trace.NoObstacle
	if s.Mode == ModeSimulator {
		obstacles = make([]trace.Obstacle, 0, len(s.Obstacles)+1)
		obstacles = append(obstacles, s.Obstacles...)
		obstacles = append(obstacles, trace.Obstacle{ID: CueID, Center: s.Cue, Radius: SimBallRadius})
		exclude = CueID
	}

	set := trace.PredictAim(*s.Boundary, s.Cue, dir,
		s.Settings.MaxBounces, s.Settings.LengthMultiplier, obstacles, exclude)
	return set, true
}
