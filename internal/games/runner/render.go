package runner

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-runner/internal/core"
)

const retryLabel = "[ RETRY ]"

// viewport maps world pixels to screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		sx: float64(dst.Width()) / worldW,
		sy: float64(dst.Height()) / worldH,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "runner failed to start"
		if g.err != nil {
			msg = g.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, core.ColorBrightRed)
		return
	}

	s := g.session
	cfg := s.Config()
	vp := newViewport(dst, cfg.World.Width, cfg.World.Height)

	groundRow := vp.row(cfg.Ground.Y)
	for y := groundRow; y < dst.Height(); y++ {
		glyph := s.ground.Glyph
		if y > groundRow {
			glyph = '░'
		}
		dst.DrawHLine(0, y, dst.Width(), glyph, s.ground.Color)
	}

	spriteQuery.Each(s.World(), func(e *donburi.Entry) {
		if Sprite.Get(e).Sheet == "" {
			return
		}
		g.drawSprite(dst, vp, Body.Get(e), Sprite.Get(e))
	})

	// The HUD keeps the last value of a finished run on screen.
	shown := s.Score()
	if s.GameOver() {
		shown = s.FinalScore()
	}
	dst.DrawTextColored(2, 0, fmt.Sprintf(" %s: %d ", cfg.Score.Label, shown), core.ColorBrightWhite)
	bestText := fmt.Sprintf(" Best: %d ", g.best)
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(bestText)-2, 0, bestText, core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if ov := s.Overlay(); ov.Visible {
		dst.DrawTextCentered(vp.row(cfg.World.Height/3), "GAME OVER", core.ColorBrightRed)
		hintRow := vp.row(cfg.World.Height / 2)
		if ov.Retry {
			dst.DrawTextCentered(hintRow, retryLabel, core.ColorBrightWhite)
		} else {
			dst.DrawTextCentered(hintRow, "tap to retry", core.ColorGray)
		}
	}
}

// drawSprite draws the current frame so that its last line sits on the row
// just above the body's bottom edge.
func (g *Game) drawSprite(dst *core.Screen, vp viewport, b *BodyData, sp *SpriteData) {
	sheet, err := g.session.assets.Sheet(sp.Sheet)
	if err != nil {
		return
	}
	lines, ok := sheet.Frames[sp.Anim.Frame()]
	if !ok || len(lines) == 0 {
		return
	}

	color := sheet.Color
	if sp.Tint != core.ColorDefault {
		color = sp.Tint
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}

	bottom := vp.row(b.Bottom()) - 1
	top := bottom - len(lines) + 1
	left := vp.col(b.X) - width/2

	for i, line := range lines {
		if sp.FlipX {
			line = mirror(line, width)
		}
		x := left
		for _, r := range line {
			if r != ' ' {
				dst.SetColored(x, top+i, r, color)
			}
			x++
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// mirror flips a sprite line horizontally within a fixed width.
func mirror(line string, width int) string {
	runes := []rune(line)
	for len(runes) < width {
		runes = append(runes, ' ')
	}
	var sb strings.Builder
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if m, ok := mirrored[r]; ok {
			r = m
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
