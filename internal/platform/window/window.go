// Package window runs a game in a desktop window with ebiten. It is the
// pixel counterpart of the terminal frontend: same games, same input
// actions, with mouse and touch presses delivered as pointer input.
package window

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// Debug font cell size, used when a game can only draw screen cells.
const (
	cellW = 6
	cellH = 16
)

// Options configure a window run.
type Options struct {
	Player string
	Store  *storage.Store
	Logger *log.Logger
	Scale  float64 // window pixels per world unit, defaults to 1
}

// Frontend adapts a registry.Game to ebiten.Game.
type Frontend struct {
	game       registry.Game
	shapes     registry.ShapeRenderer // nil when the game only renders cells
	screen     *core.Screen
	cfg        core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	frame      core.InputFrame
	state      core.GameState
	buf        []core.Shape
	scoreSaved bool
	quit       bool
}

// New creates a frontend and resets the game.
func New(game registry.Game, cfg core.RuntimeConfig, opts Options) *Frontend {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	f := &Frontend{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		frame:  core.NewInputFrame(),
	}
	f.shapes, _ = game.(registry.ShapeRenderer)
	game.Reset(cfg)
	return f
}

// Size returns the logical screen size.
func (f *Frontend) Size() (w, h int) {
	if f.shapes != nil {
		ww, wh := f.shapes.WorldSize()
		if ww > 0 && wh > 0 {
			return int(math.Ceil(ww)), int(math.Ceil(wh))
		}
	}
	return f.cfg.ScreenW * cellW, f.cfg.ScreenH * cellH
}

// Update advances the game by one tick.
func (f *Frontend) Update() error {
	w, h := f.Size()
	pollInput(w, h, &f.frame)
	return f.step()
}

// step feeds the collected input to the game. Split from Update so the
// tick logic runs without a window.
func (f *Frontend) step() error {
	defer f.frame.Clear()

	if f.frame.Has(core.ActionQuit) ||
		(f.frame.Has(core.ActionBack) && (f.state.GameOver || f.state.Paused)) {
		f.quit = true
		return ebiten.Termination
	}

	result := f.game.Step(f.frame)
	f.state = result.State
	for _, s := range result.Sounds {
		f.logger.Debug("sound", "key", s)
	}

	switch {
	case f.state.GameOver && !f.scoreSaved:
		f.saveScore()
		f.scoreSaved = true
	case !f.state.GameOver:
		f.scoreSaved = false
	}
	return nil
}

func (f *Frontend) saveScore() {
	score := f.state.RecordedScore()
	if score <= 0 || f.opts.Store == nil {
		return
	}
	if _, err := f.opts.Store.SaveScore(f.game.ID(), f.opts.Player, score); err != nil {
		f.logger.Error("saving score failed", "game", f.game.ID(), "err", err)
		return
	}
	f.logger.Info("score saved", "game", f.game.ID(), "player", f.opts.Player, "score", score)
}

// Draw renders the current frame.
func (f *Frontend) Draw(dst *ebiten.Image) {
	dst.Fill(background)

	if f.shapes == nil {
		f.game.Render(f.screen)
		for y := 0; y < f.screen.Height(); y++ {
			ebitenutil.DebugPrintAt(dst, f.screen.Row(y), 0, y*cellH)
		}
		return
	}

	f.buf = f.shapes.Shapes(f.buf[:0])
	for _, s := range f.buf {
		if !s.IsLabel() {
			vector.DrawFilledRect(dst,
				float32(s.Rect.X), float32(s.Rect.Y), float32(s.Rect.W), float32(s.Rect.H),
				rgba(s.Color), false)
		}
		if s.Text == "" {
			continue
		}
		x, y := int(s.Rect.X), int(s.Rect.Y)
		if !s.IsLabel() {
			// Center the debug font text inside the rectangle.
			x = int(s.Rect.X+s.Rect.W/2) - len(s.Text)*cellW/2
			y = int(s.Rect.Y+s.Rect.H/2) - cellH/2
		}
		ebitenutil.DebugPrintAt(dst, s.Text, x, y)
	}
}

// Layout keeps the logical screen at the game's size; ebiten scales it to
// the window.
func (f *Frontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return f.Size()
}

// State returns the state observed at the last tick.
func (f *Frontend) State() core.GameState {
	return f.state
}

// Run opens a window and plays the game until it is closed or the player
// quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	f := New(game, cfg, opts)
	w, h := f.Size()

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(int(float64(w)*f.opts.Scale), int(float64(h)*f.opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	f.logger.Info("window opened", "game", game.ID(), "width", w, "height", h)
	if err := ebiten.RunGame(f); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
