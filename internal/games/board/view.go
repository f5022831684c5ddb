package board

import (
	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
)

// View describes a game's current state as data, for clients that render
// the picture themselves.
type View struct {
	Game         string          `json:"game"`
	Title        string          `json:"title"`
	Instructions string          `json:"instructions,omitempty"`
	Status       core.GameState  `json:"status"`
	Level        *content.Level  `json:"level,omitempty"`
	Mode         string          `json:"mode,omitempty"`
	Phase        string          `json:"phase,omitempty"`
	Progress     *engine.State   `json:"progress,omitempty"`
	Waypoints    []core.Waypoint `json:"waypoints,omitempty"`
	Choices      []string        `json:"choices,omitempty"`
	Banner       string          `json:"banner,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// View snapshots the game.
func (b *Base) View() View {
	v := View{
		Game:         b.id,
		Title:        b.doc.GameTitle,
		Instructions: b.doc.Instructions,
		Status:       b.State(),
	}
	if v.Title == "" {
		v.Title = b.title
	}
	if b.banner.Visible() {
		v.Banner = b.banner.Text
	}
	if b.sess == nil {
		if b.err != nil {
			v.Error = b.err.Error()
		}
		return v
	}
	lvl := b.sess.Level()
	st := b.sess.State()
	m := b.sess.Machine()
	v.Level = &lvl
	v.Mode = m.Mode().String()
	v.Phase = m.Phase().String()
	v.Progress = &st
	v.Waypoints = m.Waypoints()
	v.Choices = b.sess.Plan().Choices
	return v
}
