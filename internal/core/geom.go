// Package core provides fundamental types and utilities shared by every game:
// cell-space rectangles for layout, normalized percent-space geometry for hit
// testing, waypoints, input frames and the screen buffer.
// It has no external dependencies so game logic stays pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in terminal cell space.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Bounds converts the rectangle to float bounds.
func (r Rect) Bounds() Bounds {
	return Bounds{Left: float64(r.X), Top: float64(r.Y), Width: float64(r.W), Height: float64(r.H)}
}

// Point is a position. In normalized space both axes run 0..100 (percent of
// the rendered media); in raw space the unit is whatever the input source uses.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// InContent reports whether a normalized point lies inside the media (0..100 inclusive).
func (p Point) InContent() bool {
	return p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100
}

// Bounds is a bounding rectangle in raw input space.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Container describes where media is rendered: the element bounds plus the
// media's intrinsic aspect ratio (width / height, in raw units). An Aspect of
// zero means the media stretches to fill the bounds.
type Container struct {
	Bounds
	Aspect float64 `json:"aspect"`
}

// MediaBox returns the rectangle the media actually occupies inside the
// container when it is scaled to fit and centered (letterboxed).
func (c Container) MediaBox() Bounds {
	b := c.Bounds
	if c.Aspect <= 0 || b.Width <= 0 || b.Height <= 0 {
		return b
	}
	boxAspect := b.Width / b.Height
	switch {
	case boxAspect > c.Aspect:
		// bars left and right
		w := b.Height * c.Aspect
		return Bounds{Left: b.Left + (b.Width-w)/2, Top: b.Top, Width: w, Height: b.Height}
	case boxAspect < c.Aspect:
		// bars top and bottom
		h := b.Width / c.Aspect
		return Bounds{Left: b.Left, Top: b.Top + (b.Height-h)/2, Width: b.Width, Height: h}
	default:
		return b
	}
}

// ToNormalized maps a raw point into the 0..100 percent space of the media
// box. Points over the letterbox bars map outside 0..100.
func ToNormalized(raw Point, c Container) Point {
	m := c.MediaBox()
	if m.Width <= 0 || m.Height <= 0 {
		return Point{X: math.NaN(), Y: math.NaN()}
	}
	return Point{
		X: (raw.X - m.Left) / m.Width * 100,
		Y: (raw.Y - m.Top) / m.Height * 100,
	}
}

// FromNormalized is the inverse of ToNormalized.
func FromNormalized(p Point, c Container) Point {
	m := c.MediaBox()
	return Point{
		X: m.Left + p.X/100*m.Width,
		Y: m.Top + p.Y/100*m.Height,
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
