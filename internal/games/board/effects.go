package board

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/learn-arcade/internal/core"
)

// Banner is a short message shown above the field for a while.
type Banner struct {
	Text  string
	Color core.Color
	left  time.Duration
}

// Show replaces the banner.
func (b *Banner) Show(text string, c core.Color, d time.Duration) {
	b.Text, b.Color, b.left = text, c, d
}

// Tick counts the banner down.
func (b *Banner) Tick(dt time.Duration) {
	if b.left <= 0 {
		return
	}
	b.left -= dt
	if b.left <= 0 {
		b.Text = ""
	}
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool {
	return b.left > 0 && b.Text != ""
}

var (
	confettiRunes  = []rune{'*', '+', '•', '✦', '°', '×'}
	confettiColors = []core.Color{core.ColorRed, core.ColorYellow, core.ColorGreen, core.ColorCyan, core.ColorMagenta, core.ColorOrange, core.ColorPink}
)

type particle struct {
	x, y   float64
	vx, vy float64
	r      rune
	c      core.Color
	life   time.Duration
}

// Confetti is a burst of falling particles in cell space.
type Confetti struct {
	parts []particle
}

// Burst spawns n particles from the top edge of area.
func (c *Confetti) Burst(rng *rand.Rand, area core.Rect, n int) {
	if area.W <= 0 || area.H <= 0 {
		return
	}
	for range n {
		c.parts = append(c.parts, particle{
			x:    float64(area.X) + rng.Float64()*float64(area.W),
			y:    float64(area.Y) + rng.Float64()*float64(area.H)/3,
			vx:   (rng.Float64() - 0.5) * 16,
			vy:   -rng.Float64() * 6,
			r:    confettiRunes[rng.Intn(len(confettiRunes))],
			c:    confettiColors[rng.Intn(len(confettiColors))],
			life: time.Duration(1500+rng.Intn(1500)) * time.Millisecond,
		})
	}
}

// Tick moves particles under gravity and drops expired ones.
func (c *Confetti) Tick(dt time.Duration) {
	s := dt.Seconds()
	kept := c.parts[:0]
	for _, p := range c.parts {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		p.vy += 12 * s
		p.x += p.vx * s
		p.y += p.vy * s
		kept = append(kept, p)
	}
	c.parts = kept
}

// Active reports whether any particle is alive.
func (c *Confetti) Active() bool {
	return len(c.parts) > 0
}

// Clear removes all particles.
func (c *Confetti) Clear() {
	c.parts = c.parts[:0]
}

// Draw renders particles over whatever is already on screen.
func (c *Confetti) Draw(dst *core.Screen) {
	for _, p := range c.parts {
		dst.SetColored(int(p.x), int(p.y), p.r, p.c)
	}
}
