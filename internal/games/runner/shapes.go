package runner

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// WorldSize returns the play area in world pixels.
func (g *Game) WorldSize() (w, h float64) {
	if g.session == nil {
		return g.cfg.World.Width, g.cfg.World.Height
	}
	cfg := g.session.Config()
	return cfg.World.Width, cfg.World.Height
}

// Shapes appends the frame as world-space rectangles: ground, bodies, HUD
// and the game over overlay.
func (g *Game) Shapes(dst []core.Shape) []core.Shape {
	if g.session == nil {
		msg := "runner failed to start"
		if g.err != nil {
			msg = g.err.Error()
		}
		return append(dst, core.Label(8, 8, msg, core.ColorBrightRed))
	}

	s := g.session
	cfg := s.Config()

	dst = append(dst, core.Shape{
		Rect:  core.RectF{X: 0, Y: cfg.Ground.Y, W: cfg.World.Width, H: max(cfg.World.Height-cfg.Ground.Y, 1)},
		Color: s.ground.Color,
	})

	spriteQuery.Each(s.World(), func(e *donburi.Entry) {
		sp := Sprite.Get(e)
		if sp.Sheet == "" {
			return
		}
		color := core.ColorWhite
		if sheet, err := s.assets.Sheet(sp.Sheet); err == nil {
			color = sheet.Color
		}
		if sp.Tint != core.ColorDefault {
			color = sp.Tint
		}
		dst = append(dst, core.Shape{Rect: Body.Get(e).Rect(), Color: color})
	})

	shown := s.Score()
	if s.GameOver() {
		shown = s.FinalScore()
	}
	dst = append(dst,
		core.Label(16, 8, fmt.Sprintf("%s: %d", cfg.Score.Label, shown), core.ColorBrightWhite),
		core.Label(cfg.World.Width-96, 8, fmt.Sprintf("Best: %d", g.best), core.ColorGray),
	)

	if g.paused {
		dst = append(dst, core.Label(cfg.World.Width/2-24, cfg.World.Height/3, "PAUSED", core.ColorBrightWhite))
	}

	if ov := s.Overlay(); ov.Visible {
		dst = append(dst, core.Label(cfg.World.Width/2-32, cfg.World.Height/3, "GAME OVER", core.ColorBrightRed))
		if ov.Retry {
			dst = append(dst, core.Shape{Rect: s.RetryButton(), Color: core.ColorGray, Text: "RETRY"})
		} else {
			dst = append(dst, core.Label(cfg.World.Width/2-40, cfg.World.Height/2, "tap to retry", core.ColorGray))
		}
	}
	return dst
}
