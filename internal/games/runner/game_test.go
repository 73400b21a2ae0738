package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

func newTestGame(t *testing.T, id string) *Game {
	t.Helper()
	g, err := registry.Create(id)
	if err != nil {
		t.Fatalf("registry.Create(%q) error: %v", id, err)
	}
	rg, ok := g.(*Game)
	if !ok {
		t.Fatalf("registry.Create(%q) returned %T", id, g)
	}
	rg.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	if rg.Err() != nil {
		t.Fatalf("Reset() error: %v", rg.Err())
	}
	return rg
}

// step runs n ticks with the given actions held.
func step(g *Game, n int, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = g.Step(in)
	}
	return res
}

func pointerAt(x, y float64) core.InputFrame {
	in := core.NewInputFrame()
	in.SetPointer(x, y)
	return in
}

func TestRegisteredVariants(t *testing.T) {
	tests := []struct {
		id      string
		title   string
		variant config.RunnerVariant
		jump    float64
		trigger config.RestartTrigger
	}{
		{"runner", "Runner", config.VariantClassic, -450, config.RestartButton},
		{"runner_tap", "Runner Tap", config.VariantTap, -400, config.RestartPointer},
		{"runner_rush", "Runner Rush", config.VariantRush, -500, config.RestartButton},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g := newTestGame(t, tt.id)
			if g.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", g.Title(), tt.title)
			}
			if g.Variant() != tt.variant {
				t.Errorf("Variant() = %q, want %q", g.Variant(), tt.variant)
			}
			cfg := g.Session().Config()
			if cfg.Player.JumpVelocity != tt.jump {
				t.Errorf("jump velocity = %.0f, want %.0f", cfg.Player.JumpVelocity, tt.jump)
			}
			if cfg.Restart.Trigger != tt.trigger {
				t.Errorf("restart trigger = %q, want %q", cfg.Restart.Trigger, tt.trigger)
			}
		})
	}
}

func TestGameScoresAndJumps(t *testing.T) {
	g := newTestGame(t, "runner")

	res := step(g, 60)
	if res.State.Score != 1 {
		t.Errorf("score after 60 ticks = %d, want 1", res.State.Score)
	}

	res = step(g, 1, core.ActionJump)
	if countSound(res.Sounds, SoundJump) != 1 {
		t.Errorf("sounds = %v, want a jump", res.Sounds)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, "runner")
	step(g, 30)

	res := step(g, 1, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	before := g.Session().PlayerBody()
	step(g, 120)
	if g.Session().PlayerBody() != before || g.State().Score != 0 {
		t.Error("paused game advanced")
	}

	res = step(g, 1, core.ActionPause)
	if res.State.Paused {
		t.Error("game should be resumed")
	}
}

func TestGameRestartTriggers(t *testing.T) {
	t.Run("button ignores pointer outside the button", func(t *testing.T) {
		g := newTestGame(t, "runner")
		_ = g.Session().Dispatch(EnemyOverlap{})

		g.Step(pointerAt(0.05, 0.05))
		if !g.State().GameOver {
			t.Error("pointer outside the retry button restarted the game")
		}

		g.Step(pointerAt(0.5, 0.5))
		if g.State().GameOver {
			t.Error("pointer on the retry button did not restart the game")
		}
	})

	t.Run("button accepts confirm", func(t *testing.T) {
		g := newTestGame(t, "runner")
		_ = g.Session().Dispatch(EnemyOverlap{})

		step(g, 1, core.ActionConfirm)
		if g.State().GameOver {
			t.Error("confirm did not restart the game")
		}
	})

	t.Run("pointer restarts anywhere", func(t *testing.T) {
		g := newTestGame(t, "runner_tap")
		_ = g.Session().Dispatch(EnemyOverlap{})

		g.Step(pointerAt(0.05, 0.9))
		if g.State().GameOver {
			t.Error("tap did not restart the game")
		}
	})

	t.Run("restart key always works", func(t *testing.T) {
		for _, id := range []string{"runner", "runner_tap"} {
			g := newTestGame(t, id)
			_ = g.Session().Dispatch(EnemyOverlap{})
			step(g, 1, core.ActionRestart)
			if g.State().GameOver {
				t.Errorf("%s: R did not restart the game", id)
			}
		}
	})
}

func TestGameRecordsFinalScore(t *testing.T) {
	g := newTestGame(t, "runner")
	step(g, 150)

	_ = g.Session().Dispatch(EnemyOverlap{})
	res := step(g, 1)

	if res.State.Score != 0 || !res.State.GameOver {
		t.Fatalf("state = %+v, want game over with score 0", res.State)
	}
	if res.State.RecordedScore() != 2 {
		t.Errorf("recorded score = %d, want 2", res.State.RecordedScore())
	}
	if res.State.Best != 2 {
		t.Errorf("best = %d, want 2", res.State.Best)
	}

	step(g, 1, core.ActionRestart)
	if g.State().Best != 2 {
		t.Error("best score lost on restart")
	}
}

func TestRetuneKeepsVariant(t *testing.T) {
	g := newTestGame(t, "runner_tap")

	cfg := config.DefaultRunnerConfig()
	cfg.World.Gravity = 1500
	g.Retune(cfg)

	got := g.Session().Config()
	if got.World.Gravity != 1500 {
		t.Errorf("gravity = %.0f, want 1500", got.World.Gravity)
	}
	if got.Player.JumpVelocity != -400 || got.Restart.Trigger != config.RestartPointer {
		t.Error("retune dropped the variant constants")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "runner")
	step(g, 120)

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if !strings.Contains(dst.Row(0), "Puntos: 2") {
		t.Errorf("HUD row = %q, want score", dst.Row(0))
	}
	if !strings.Contains(dst.Row(23), "▀") {
		t.Errorf("ground row = %q", dst.Row(23))
	}
	// Player rests on the ground: its last sprite line sits right above it.
	if strings.TrimSpace(dst.Row(22)[:15]) == "" {
		t.Errorf("player not drawn above the ground: %q", dst.Row(22))
	}

	_ = g.Session().Dispatch(EnemyOverlap{})
	dst.Clear()
	g.Render(dst)

	if !strings.Contains(dst.String(), "GAME OVER") {
		t.Error("game over text not drawn")
	}
	if !strings.Contains(dst.Row(12), retryLabel) {
		t.Errorf("retry row = %q, want %q", dst.Row(12), retryLabel)
	}
	if !strings.Contains(dst.Row(0), "Puntos: 2") {
		t.Errorf("HUD should keep the final score, got %q", dst.Row(0))
	}
}

func TestRenderTapOverlay(t *testing.T) {
	g := newTestGame(t, "runner_tap")
	_ = g.Session().Dispatch(EnemyOverlap{})

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if strings.Contains(dst.String(), retryLabel) {
		t.Error("tap variant should not draw a retry button")
	}
	if !strings.Contains(dst.String(), "tap to retry") {
		t.Error("tap hint not drawn")
	}
}
