package core

// Shape is a filled rectangle in world coordinates, used by frontends that
// draw pixels instead of screen cells. A shape with an empty rectangle and
// a Text is a label anchored at Rect.X, Rect.Y.
type Shape struct {
	Rect  RectF
	Color Color
	Text  string
}

// Label returns a text-only shape at the given world position.
func Label(x, y float64, text string, c Color) Shape {
	return Shape{Rect: RectF{X: x, Y: y}, Color: c, Text: text}
}

// IsLabel reports whether the shape only carries text.
func (s Shape) IsLabel() bool {
	return s.Rect.W <= 0 || s.Rect.H <= 0
}
