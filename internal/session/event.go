package session

import (
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventLevelLoaded     EventType = "levelLoaded"
	EventWaypointReached EventType = "waypointReached"
	EventWrongAttempt    EventType = "wrongAttempt"
	EventLevelComplete   EventType = "levelComplete"
	EventAllComplete     EventType = "allComplete"
	EventTimeExpired     EventType = "timeExpired"
	EventLevelRejected   EventType = "levelRejected"
)

// Event is emitted by the controller for the presentation layer.
type Event struct {
	Type      EventType          `json:"type"`
	Level     int                `json:"level"`
	LevelID   string             `json:"levelId,omitempty"`
	Outcome   engine.OutcomeKind `json:"-"`
	Waypoint  *core.Waypoint     `json:"waypoint,omitempty"`
	Expected  *core.Waypoint     `json:"expected,omitempty"`
	Label     string             `json:"label,omitempty"`
	Cue       core.Cue           `json:"cue,omitempty"`
	Celebrate bool               `json:"celebrate,omitempty"`
	TimedOut  bool               `json:"timedOut,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}
