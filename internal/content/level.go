// Package content defines the static level data every game reads: the tagged
// Level variant, the per-game Document and the loaders that find them.
package content

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
)

// Kind discriminates the level variants.
type Kind string

const (
	KindOrderedPath        Kind = "ordered-path"
	KindUnorderedPlacement Kind = "unordered-placement"
	KindChoiceSelection    Kind = "choice-selection"
)

// Difficulty is a level's difficulty tag.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	// DifficultyAll is a filter value, never a level tag.
	DifficultyAll Difficulty = "all"
)

// Difficulties lists the filter values in cycling order.
var Difficulties = []Difficulty{DifficultyAll, DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a difficulty tag or "all"; empty means "all".
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyAll, nil
	case DifficultyAll, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("content: unknown difficulty %q (want easy, medium, hard or all)", s)
}

// Stroke is one pen stroke of a tracing item, in normalized space.
type Stroke struct {
	Start core.Point   `json:"start" yaml:"start"`
	End   core.Point   `json:"end" yaml:"end"`
	Guide []core.Point `json:"guide,omitempty" yaml:"guide,omitempty"`
}

// Level is one playable scenario.
type Level struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Kind        Kind       `json:"kind" yaml:"kind"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Image       string     `json:"image,omitempty" yaml:"image,omitempty"`
	Art         []string   `json:"art,omitempty" yaml:"art,omitempty"`
	Closed      bool       `json:"closed,omitempty" yaml:"closed,omitempty"`
	TimeLimit   int        `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"` // seconds, 0 = none
	Tolerance   float64    `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`

	Waypoints []core.Waypoint `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`

	// tracing
	Character string   `json:"character,omitempty" yaml:"character,omitempty"`
	Strokes   []Stroke `json:"strokes,omitempty" yaml:"strokes,omitempty"`

	// number pattern
	Sequence     []int  `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	MissingIndex int    `json:"missingIndex,omitempty" yaml:"missingIndex,omitempty"`
	Answer       int    `json:"answer,omitempty" yaml:"answer,omitempty"`
	Rule         string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Choices      []int  `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// DisplayName returns the title when set, otherwise the name.
func (l Level) DisplayName() string {
	if l.Title != "" {
		return l.Title
	}
	return l.Name
}

// Validate reports whether the level can be turned into a playable plan.
func (l Level) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("content: level %q: %w: %s", l.ID, engine.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
	}
	switch l.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fail("unknown difficulty %q", l.Difficulty)
	}
	switch l.Kind {
	case KindOrderedPath:
		if len(l.Waypoints) == 0 && len(l.Strokes) == 0 {
			return fail("no waypoints or strokes")
		}
	case KindUnorderedPlacement:
		if len(l.Waypoints) == 0 {
			return fail("no label positions")
		}
	case KindChoiceSelection:
		if len(l.Sequence) < 2 {
			return fail("sequence too short")
		}
		if l.MissingIndex < 0 || l.MissingIndex >= len(l.Sequence) {
			return fail("missing index %d out of range", l.MissingIndex)
		}
		if len(l.Choices) > 0 {
			seen := make(map[int]bool, len(l.Choices))
			for _, c := range l.Choices {
				if seen[c] {
					return fail("duplicate choice %d", c)
				}
				seen[c] = true
			}
			if !seen[l.Answer] {
				return fail("answer %d is not among the choices", l.Answer)
			}
		}
	default:
		return fail("unknown kind %q", l.Kind)
	}
	return nil
}

// Tolerances holds the acceptance radii applied where content leaves them unset.
type Tolerances struct {
	Default    float64
	Start      float64
	End        float64
	MinSamples int
	Choices    int
}

// Plan is a level prepared for the progression engine.
type Plan struct {
	Waypoints []core.Waypoint
	Options   engine.Options
	// Choices is the display order of answer choices for choice levels.
	Choices []string
}

// Plan converts the level into engine input. rng shuffles answer choices
// and may be nil for other kinds.
func (l Level) Plan(tol Tolerances, rng *rand.Rand) (Plan, error) {
	if err := l.Validate(); err != nil {
		return Plan{}, err
	}
	def := tol.Default
	if l.Tolerance > 0 {
		def = l.Tolerance
	}

	switch l.Kind {
	case KindOrderedPath:
		if len(l.Strokes) > 0 {
			return Plan{Waypoints: strokeWaypoints(l.Strokes, tol, l.Tolerance), Options: engine.Options{Mode: engine.ModeOrdered}}, nil
		}
		ws := make([]core.Waypoint, len(l.Waypoints))
		for i, w := range l.Waypoints {
			if w.ID == "" {
				w.ID = strconv.Itoa(i + 1)
			}
			if w.Order == 0 {
				w.Order = i
			}
			if w.Tolerance == 0 {
				w.Tolerance = def
			}
			ws[i] = w
		}
		return Plan{Waypoints: ws, Options: engine.Options{Mode: engine.ModeOrdered, Closed: l.Closed}}, nil

	case KindUnorderedPlacement:
		ws := make([]core.Waypoint, len(l.Waypoints))
		for i, w := range l.Waypoints {
			if w.Label == "" {
				w.Label = strings.ToUpper(w.ID)
			}
			if w.ID == "" {
				w.ID = strings.ToLower(w.Label)
			}
			if w.Tolerance == 0 {
				w.Tolerance = def
			}
			w.Order = i
			ws[i] = w
		}
		return Plan{Waypoints: ws, Options: engine.Options{Mode: engine.ModeUnordered}}, nil

	default:
		answer := strconv.Itoa(l.Answer)
		blank := core.Waypoint{
			ID:        "blank",
			Label:     answer,
			Pos:       BlankPosition(len(l.Sequence), l.MissingIndex),
			Tolerance: def,
		}
		choices := l.Choices
		if len(choices) == 0 {
			n := tol.Choices
			if n <= 0 {
				n = 4
			}
			choices = GenerateChoices(l.Answer, n, rng)
		}
		plan := Plan{Waypoints: []core.Waypoint{blank}, Options: engine.Options{Mode: engine.ModeChoice}}
		for _, c := range choices {
			s := strconv.Itoa(c)
			plan.Choices = append(plan.Choices, s)
			if s != answer {
				plan.Options.Distractors = append(plan.Options.Distractors, s)
			}
		}
		return plan, nil
	}
}

// BlankPosition is where the missing number of a sequence sits in
// normalized space: cells spread evenly across the middle row.
func BlankPosition(length, index int) core.Point {
	return core.Pt((float64(index)+0.5)/float64(length)*100, 50)
}

// strokeWaypoints expands strokes into start/end pairs. A positive override
// replaces both the start and end radii.
func strokeWaypoints(strokes []Stroke, tol Tolerances, override float64) []core.Waypoint {
	start, end := tol.Start, tol.End
	if start <= 0 {
		start = tol.Default
	}
	if end <= 0 {
		end = tol.Default
	}
	if override > 0 {
		start, end = override, override
	}
	ws := make([]core.Waypoint, 0, len(strokes)*2)
	for i, s := range strokes {
		n := strconv.Itoa(i + 1)
		ws = append(ws,
			core.Waypoint{ID: "start-" + n, Pos: s.Start, Order: 2 * i, Tolerance: start},
			core.Waypoint{ID: "end-" + n, Pos: s.End, Order: 2*i + 1, Tolerance: end, Lift: true, MinSamples: tol.MinSamples},
		)
	}
	return ws
}

// Filter returns the levels tagged with d, or all levels for DifficultyAll.
func Filter(levels []Level, d Difficulty) []Level {
	if d == DifficultyAll || d == "" {
		return levels
	}
	var out []Level
	for _, l := range levels {
		if l.Difficulty == d {
			out = append(out, l)
		}
	}
	return out
}
