package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

func findShape(shapes []core.Shape, match func(core.Shape) bool) (core.Shape, bool) {
	for _, s := range shapes {
		if match(s) {
			return s, true
		}
	}
	return core.Shape{}, false
}

func TestShapes(t *testing.T) {
	g := newTestGame(t, "runner")
	step(g, 60)

	w, h := g.WorldSize()
	if w != 800 || h != 300 {
		t.Fatalf("WorldSize() = %.0fx%.0f, want 800x300", w, h)
	}

	shapes := g.Shapes(nil)

	ground := shapes[0]
	if ground.Rect.Y != 288 || ground.Rect.W != 800 || ground.IsLabel() {
		t.Errorf("first shape = %+v, want the ground strip", ground)
	}

	body := g.Session().PlayerBody()
	player, ok := findShape(shapes, func(s core.Shape) bool { return s.Rect == body.Rect() })
	if !ok {
		t.Fatal("player shape missing")
	}
	if player.Color != core.ColorBrightYellow {
		t.Errorf("player color = %v, want the sheet color", player.Color)
	}

	if _, ok := findShape(shapes, func(s core.Shape) bool { return s.Text == "Puntos: 1" }); !ok {
		t.Error("score label missing")
	}
}

func TestShapesGameOver(t *testing.T) {
	g := newTestGame(t, "runner")
	_ = g.Session().Dispatch(EnemyOverlap{})

	shapes := g.Shapes(nil)

	body := g.Session().PlayerBody()
	player, _ := findShape(shapes, func(s core.Shape) bool { return s.Rect == body.Rect() })
	if player.Color != core.ColorBrightRed {
		t.Errorf("player color = %v, want red tint", player.Color)
	}

	btn, ok := findShape(shapes, func(s core.Shape) bool { return s.Text == "RETRY" })
	if !ok {
		t.Fatal("retry button missing")
	}
	if btn.Rect != g.Session().RetryButton() {
		t.Errorf("retry button = %+v, want %+v", btn.Rect, g.Session().RetryButton())
	}
}
