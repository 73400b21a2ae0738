package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)

	s.SetColored(3, 2, '█', ColorBrightRed)
	c := s.GetCell(3, 2)
	if c.Rune != '█' || c.Color != ColorBrightRed {
		t.Errorf("GetCell = %+v, expected red block", c)
	}

	// Out of bounds writes are ignored and reads are blank
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(0, 40, 'X', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 40) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndColors(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColored(8, 0, "Puntos", ColorYellow)

	if got := s.Row(0); got != "        Punt" {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(9, 0).Color != ColorYellow {
		t.Error("text should carry its color")
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "▶ GO", ColorDefault)

	// 4 runes in 11 columns start at column 3
	if s.Get(3, 0) != '▶' || s.Get(5, 0) != 'G' {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorRed)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("box mismatch:\n%s", got)
	}
	if s.GetCell(0, 0).Color != ColorRed {
		t.Error("box should use the given color")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawHLine(0, 1, 4, '═', ColorGreen)

	s.Resize(6, 3)
	if s.Row(0) != "abcd  " {
		t.Errorf("Row(0) after grow = %q", s.Row(0))
	}
	if s.GetCell(3, 1).Color != ColorGreen {
		t.Error("resize should keep colors")
	}

	s.Resize(2, 1)
	if s.String() != "ab" {
		t.Errorf("String() after shrink = %q", s.String())
	}

	// Cells dropped by a shrink come back blank.
	s.Resize(3, 2)
	if s.Row(0) != "ab " || s.Row(1) != "   " {
		t.Errorf("rows after regrow = %q, %q", s.Row(0), s.Row(1))
	}
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("regrown cell = %+v, expected blank", c)
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor("bright_red"); !ok || c != ColorBrightRed {
		t.Errorf("ParseColor(bright_red) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("ultraviolet"); ok {
		t.Error("unknown color should not parse")
	}
}
