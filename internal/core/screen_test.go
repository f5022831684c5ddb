package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 12) {
			t.Errorf("row %d = %q, want blanks", y, s.Row(y))
		}
	}
}

func TestScreenSetOutOfBounds(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(-1, 0, 'A')
	s.Set(5, 0, 'A')
	s.Set(0, 5, 'A')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get out of bounds = %q, want space", got)
	}
	s.SetColored(2, 3, 'X', ColorRed)
	cell := s.GetCell(2, 3)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell = %+v, want X/red", cell)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, '#')
	s.Resize(6, 2)
	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 6x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab", ColorDefault)
	if got := s.Row(0); got != "    ab    " {
		t.Errorf("Row = %q", got)
	}
}

func TestDrawLineKeepsMarkers(t *testing.T) {
	s := NewScreen(10, 3)
	s.Set(4, 0, '2')
	s.DrawLine(0, 0, 9, 0, '·', ColorGray)
	if got := s.Row(0); got != "····2·····" {
		t.Errorf("Row = %q", got)
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawLine(0, 0, 2, 2, '*', ColorDefault)
	want := "*  \n * \n  *"
	if got := s.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorDefault)
	want := "╭──╮\n│  │\n╰──╯"
	if got := s.String(); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
