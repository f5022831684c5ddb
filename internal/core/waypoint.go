package core

// Waypoint is a target the player must reach, connect to or drop onto.
type Waypoint struct {
	ID        string  `json:"id" yaml:"id"`
	Pos       Point   `json:"pos" yaml:"pos"`
	Order     int     `json:"order" yaml:"order"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Label is the identifier a placement must carry to be accepted here.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Paired is a second point tied to this waypoint; for labelling it is the
	// feature the leader line points at while Pos is the drop zone.
	Paired *Point `json:"paired,omitempty" yaml:"paired,omitempty"`
	// Origin is where a draggable label starts, when it has a position.
	Origin *Point `json:"origin,omitempty" yaml:"origin,omitempty"`
	// Lift ends the gesture once this waypoint is reached.
	Lift bool `json:"lift,omitempty" yaml:"lift,omitempty"`
	// MinSamples is the number of gesture samples that must be exceeded
	// before this waypoint accepts a connection.
	MinSamples int `json:"minSamples,omitempty" yaml:"minSamples,omitempty"`
}

// WithinTolerance reports whether p is strictly closer to w than its tolerance.
func WithinTolerance(p Point, w Waypoint) bool {
	return Distance(p, w.Pos) < w.Tolerance
}

// NearestWaypoint returns the index of the candidate closest to p among those
// p is within tolerance of, or -1 if there is none. maxTolerance caps every
// candidate's tolerance when positive. Ties go to the earliest candidate.
func NearestWaypoint(p Point, candidates []Waypoint, maxTolerance float64) int {
	best := -1
	bestDist := 0.0
	for i, w := range candidates {
		d := Distance(p, w.Pos)
		limit := w.Tolerance
		if maxTolerance > 0 && maxTolerance < limit {
			limit = maxTolerance
		}
		if d >= limit {
			continue
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
