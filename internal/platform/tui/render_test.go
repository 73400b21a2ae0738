package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "Puntos", core.ColorBrightWhite)
	s.DrawTextColored(7, 0, "3", core.ColorRed)
	s.DrawHLine(0, 1, 12, '▀', core.ColorGreen)

	out := ansi.Strip(RenderScreen(s))
	lines := strings.Split(out, "\n")

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Puntos 3    " {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != strings.Repeat("▀", 12) {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); ansi.Strip(got) != "x" {
		t.Errorf("unknown color rendered %q", got)
	}
}
