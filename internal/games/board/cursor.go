package board

import "github.com/vovakirdan/learn-arcade/internal/core"

// Cursor lets keyboard players point: arrows move it, Enter presses and
// releases. It produces the same pointer events a mouse would.
type Cursor struct {
	X, Y    int
	Visible bool
	Down    bool
}

// Keys turns the frame's arrow and confirm actions into pointer events
// inside bounds.
func (c *Cursor) Keys(in core.InputFrame, bounds core.Rect) []core.PointerEvent {
	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionLeft):
		dx = -2
	case in.Has(core.ActionRight):
		dx = 2
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	}
	confirm := in.Has(core.ActionConfirm)
	if dx == 0 && dy == 0 && !confirm {
		return nil
	}
	if !c.Visible {
		c.Visible = true
		c.X = bounds.X + bounds.W/2
		c.Y = bounds.Y + bounds.H/2
		dx, dy = 0, 0
	}

	var evs []core.PointerEvent
	if dx != 0 || dy != 0 {
		c.X = core.Clamp(c.X+dx, bounds.X, bounds.Right()-1)
		c.Y = core.Clamp(c.Y+dy, bounds.Y, bounds.Bottom()-1)
		evs = append(evs, c.event(core.PointerMove))
	}
	if confirm {
		kind := core.PointerDown
		if c.Down {
			kind = core.PointerUp
		}
		c.Down = !c.Down
		evs = append(evs, c.event(kind))
	}
	return evs
}

// Track follows mouse events so keyboard and mouse stay in sync.
func (c *Cursor) Track(ev core.PointerEvent) {
	x, y, ok := CellOf(ev)
	if !ok {
		return
	}
	c.X, c.Y = x, y
	c.Visible = false
	switch ev.Kind {
	case core.PointerDown:
		c.Down = true
	case core.PointerUp, core.PointerLeave:
		c.Down = false
	}
}

func (c *Cursor) event(kind core.PointerKind) core.PointerEvent {
	return core.PointerEvent{Kind: kind, Pos: core.Pt(float64(c.X), float64(c.Y))}
}

// Draw marks the cursor cell when it is keyboard driven.
func (c *Cursor) Draw(dst *core.Screen) {
	if !c.Visible {
		return
	}
	r := '+'
	if c.Down {
		r = '◆'
	}
	dst.SetColored(c.X, c.Y, r, core.ColorMagenta)
}
