package board

import (
	"strconv"

	"github.com/vovakirdan/learn-arcade/internal/core"
)

// Chip is a clickable label in a tray.
type Chip struct {
	Label string
	Text  string
	Rect  core.Rect
}

// Chips lays labels out left to right in area, wrapping to the next row.
// Numbered chips are prefixed with their 1-based key.
func Chips(labels []string, area core.Rect, numbered bool) []Chip {
	chips := make([]Chip, 0, len(labels))
	x, y := area.X, area.Y
	for i, l := range labels {
		text := " " + l + " "
		if numbered {
			text = " " + strconv.Itoa(i+1) + ") " + l + " "
		}
		w := len([]rune(text)) + 2
		if x+w > area.Right() && x > area.X {
			x = area.X
			y++
		}
		if y >= area.Bottom() {
			break
		}
		chips = append(chips, Chip{Label: l, Text: text, Rect: core.NewRect(x, y, w, 1)})
		x += w + 1
	}
	return chips
}

// ChipAt returns the chip under a cell.
func ChipAt(chips []Chip, x, y int) (Chip, bool) {
	for _, c := range chips {
		if c.Rect.Contains(x, y) {
			return c, true
		}
	}
	return Chip{}, false
}

// DrawChips renders chips as [ text ] with a per-chip color.
func DrawChips(dst *core.Screen, chips []Chip, color func(Chip) core.Color) {
	for _, c := range chips {
		col := color(c)
		dst.SetColored(c.Rect.X, c.Rect.Y, '[', col)
		dst.DrawTextColored(c.Rect.X+1, c.Rect.Y, c.Text, col)
		dst.SetColored(c.Rect.Right()-1, c.Rect.Y, ']', col)
	}
}

// CellOf returns the terminal cell of a pointer event without a container.
func CellOf(ev core.PointerEvent) (int, int, bool) {
	if ev.Container != nil {
		return 0, 0, false
	}
	return int(ev.Pos.X), int(ev.Pos.Y), true
}
