// Package runner implements a side-scrolling runner: the player jumps over
// enemies walking in from the right, scores a point per interval and loses
// on contact. Three variants share the implementation and differ only in a
// few constants.
package runner

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a Session to the platform's fixed-tick game contract. It adds
// pause, best score tracking and input translation.
type Game struct {
	id      string
	title   string
	variant config.RunnerVariant

	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	assets  *Assets
	anims   *AnimationSet
	session *Session
	logger  *log.Logger
	err     error

	paused bool
	frames int64
	best   int
}

// New creates a runner game for a variant.
func New(id, title string, variant config.RunnerVariant) *Game {
	return &Game{id: id, title: title, variant: variant}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Variant returns the rule set this game plays.
func (g *Game) Variant() config.RunnerVariant {
	return g.variant
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger.WithPrefix(g.id)

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		g.logger.Error("config load failed, using defaults", "err", err)
	}
	g.cfg = g.tune(cfg)

	g.paused = false
	g.frames = 0
	g.session = nil
	g.err = nil

	if g.assets == nil {
		g.assets, g.err = DefaultAssets()
		if g.err != nil {
			g.logger.Error("asset setup failed", "err", g.err)
			return
		}
		g.anims = NewAnimationSet()
	}

	g.session, g.err = NewSession(SessionOptions{
		Config:     g.cfg,
		Assets:     g.assets,
		Animations: g.anims,
		Rand:       rand.New(rand.NewSource(runtime.Seed)),
		Logger:     g.logger,
	})
	if g.err != nil {
		g.logger.Error("session setup failed", "err", g.err)
		return
	}
	g.logger.Debug("session started", "variant", g.Variant(), "seed", runtime.Seed)
}

// tune applies the variant and difficulty preset on top of a loaded config.
func (g *Game) tune(cfg config.RunnerConfig) config.RunnerConfig {
	config.ApplyVariant(&cfg, g.variant)
	config.ApplyPreset(&cfg, difficultyPreset)
	return cfg
}

// Retune applies a reloaded configuration without restarting the run.
func (g *Game) Retune(cfg config.RunnerConfig) {
	g.cfg = g.tune(cfg)
	if g.session != nil {
		g.session.Retune(g.cfg)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	if s == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !s.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if s.GameOver() {
		if g.restartRequested(in) {
			if err := s.Dispatch(RestartRequested{}); err != nil {
				g.err = err
				g.logger.Error("restart failed", "err", err)
			}
		}
	} else if in.Has(core.ActionJump) || in.Has(core.ActionPointer) {
		_ = s.Dispatch(JumpRequested{})
	}

	prev := g.runtime.FrameTime(g.frames)
	g.frames++
	_ = s.Dispatch(Tick{Dt: g.runtime.FrameTime(g.frames) - prev})

	g.best = max(g.best, s.Score(), s.FinalScore())
	return core.StepResult{State: g.State(), Sounds: s.DrainSounds()}
}

func (g *Game) restartRequested(in core.InputFrame) bool {
	if in.Has(core.ActionRestart) {
		return true
	}
	if g.cfg.Restart.Trigger == config.RestartPointer {
		return in.Has(core.ActionPointer) || in.Has(core.ActionJump) || in.Has(core.ActionConfirm)
	}
	return in.Has(core.ActionConfirm) || (in.Has(core.ActionPointer) && g.session.RetryHit(in.Pointer))
}

// Session returns the running session, or nil if setup failed.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Best: g.best, Paused: g.paused}
	if g.session == nil {
		st.GameOver = true
		return st
	}
	st.Score = g.session.Score()
	st.FinalScore = g.session.FinalScore()
	st.GameOver = g.session.GameOver()
	return st
}

// Register the games with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return New("runner", "Runner", config.VariantClassic)
	})
	registry.Register("runner_tap", func() registry.Game {
		return New("runner_tap", "Runner Tap", config.VariantTap)
	})
	registry.Register("runner_rush", func() registry.Game {
		return New("runner_rush", "Runner Rush", config.VariantRush)
	})
}
