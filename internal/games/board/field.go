// Package board holds what the learning games share on screen: the mapping
// between terminal cells and normalized content space, the HUD, banners and
// confetti, and the glue between a game and its session controller.
package board

import (
	"math"

	"github.com/vovakirdan/learn-arcade/internal/core"
)

// CellAspect is the width/height ratio of a terminal cell grid that renders
// a square picture square: cells are about twice as tall as wide.
const CellAspect = 2.0

// Field places normalized content (0..100 on both axes) into a rectangle of
// terminal cells, letterboxed to Aspect.
type Field struct {
	Area   core.Rect
	Aspect float64
}

// Container describes the field as a letterbox container in cell units.
func (f Field) Container() core.Container {
	return core.Container{Bounds: f.Area.Bounds(), Aspect: f.Aspect}
}

// Box returns the cells the content occupies.
func (f Field) Box() core.Rect {
	m := f.Container().MediaBox()
	x := int(math.Round(m.Left))
	y := int(math.Round(m.Top))
	return core.NewRect(x, y, int(math.Round(m.Left+m.Width))-x, int(math.Round(m.Top+m.Height))-y)
}

// Cell returns the cell a normalized point falls in. Points on the far
// edges (100) land on the last row or column.
func (f Field) Cell(p core.Point) (int, int) {
	raw := core.FromNormalized(p, f.Container())
	box := f.Box()
	x := core.Clamp(int(math.Floor(raw.X)), box.X, box.Right()-1)
	y := core.Clamp(int(math.Floor(raw.Y)), box.Y, box.Bottom()-1)
	return x, y
}

// Normalize maps the center of a cell into normalized space.
func (f Field) Normalize(x, y int) core.Point {
	return core.ToNormalized(core.Pt(float64(x)+0.5, float64(y)+0.5), f.Container())
}

// Map converts a pointer event to normalized space. Events that carry their
// own container (web clients) are mapped through it; others are cell
// coordinates on this field.
func (f Field) Map(ev core.PointerEvent) core.Point {
	if ev.Container != nil {
		return core.ToNormalized(ev.Pos, *ev.Container)
	}
	return f.Normalize(int(ev.Pos.X), int(ev.Pos.Y))
}

// Contains reports whether a cell lies inside the content box.
func (f Field) Contains(x, y int) bool {
	return f.Box().Contains(x, y)
}

// Line draws a straight segment between two normalized points.
func (f Field) Line(dst *core.Screen, a, b core.Point, r rune, c core.Color) {
	x0, y0 := f.Cell(a)
	x1, y1 := f.Cell(b)
	dst.DrawLine(x0, y0, x1, y1, r, c)
}

// Polyline draws connected segments through pts.
func (f Field) Polyline(dst *core.Screen, pts []core.Point, r rune, c core.Color) {
	for i := 1; i < len(pts); i++ {
		f.Line(dst, pts[i-1], pts[i], r, c)
	}
}

// Text draws text centered on a normalized point.
func (f Field) Text(dst *core.Screen, p core.Point, text string, c core.Color) {
	x, y := f.Cell(p)
	n := len([]rune(text))
	dst.DrawTextColored(x-n/2, y, text, c)
}
