package overlay

import "github.com/bankshot/backend/internal/trace"

// levelPalette is the fixed ordered color cycle for bounce levels.
// These MUST match the overlay client palette so saved screenshots and
// live renders agree.
var levelPalette = []string{
	"#2ecc71", // green (direct shot)
	"#f1c40f", // yellow
	"#e67e22", // orange
	"#e74c3c", // red
	"#9b59b6", // purple
	"#3498db", // blue
}

const (
	bounceMarkerRadius   = 4.0
	obstacleMarkerRadius = 9.0
)

// LevelStyle tells a thin rendering client how to draw one path of a
// prediction set: the direct shot (level 0) as a continuous line, every
// deeper level dashed, with a marker at each bounce point and a larger
// marker at an obstacle-hit terminal.
type LevelStyle struct {
	Level                int     `json:"level"`
	Color                string  `json:"color"`
	Dashed               bool    `json:"dashed"`
	BounceMarkerRadius   float64 `json:"bounce_marker_radius"`
	ObstacleMarkerRadius float64 `json:"obstacle_marker_radius"`
}

// StyleForLevel returns the draw hints for one bounce level, cycling
// through the palette by level.
func StyleForLevel(level int) LevelStyle {
	return LevelStyle{
		Level:                level,
		Color:                levelPalette[level%len(levelPalette)],
		Dashed:               level >= 1,
		BounceMarkerRadius:   bounceMarkerRadius,
		ObstacleMarkerRadius: obstacleMarkerRadius,
	}
}

// StylesFor returns one style per path in the set, aligned by index.
func StylesFor(set trace.PredictionSet) []LevelStyle {
	styles := make([]LevelStyle, len(set.Paths))
	for i, p := range set.Paths {
		styles[i] = StyleForLevel(p.Level)
	}
	return styles
}
