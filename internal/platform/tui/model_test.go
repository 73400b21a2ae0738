package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// scriptedGame ends its run with a fixed score when it sees a jump.
type scriptedGame struct {
	state   core.GameState
	inputs  []core.InputFrame
	retuned []config.RunnerConfig
	resets  int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	switch {
	case in.Has(core.ActionJump) && !g.state.GameOver:
		g.state = core.GameState{GameOver: true, FinalScore: 7}
	case in.Has(core.ActionRestart) && g.state.GameOver:
		g.state = core.GameState{}
	}
	return core.StepResult{State: g.state, Sounds: []core.Sound{"gameOver"}}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

func (g *scriptedGame) Retune(cfg config.RunnerConfig) {
	g.retuned = append(g.retuned, cfg)
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func newScriptedModel(t *testing.T, store *storage.Store) (GameModel, *scriptedGame) {
	t.Helper()
	g := &scriptedGame{}
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, GameOptions{
		Player: "ana",
		Store:  store,
	})
	m.Init()
	return m, g
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	m, _ := newScriptedModel(t, store)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 7 || scores[0].Player != "ana" {
		t.Fatalf("scores = %+v, want one run of 7 by ana", scores)
	}

	// A new run that ends again is saved again.
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})

	scores, _ = store.TopScores("scripted", 10)
	if len(scores) != 2 {
		t.Errorf("saved %d runs, want 2", len(scores))
	}
}

func TestGameModelInputIsPerTick(t *testing.T) {
	m, g := newScriptedModel(t, nil)

	m = update(t, m, tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(g.inputs) != 2 {
		t.Fatalf("game stepped %d times, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionPointer) {
		t.Error("pointer press not delivered")
	}
	if g.inputs[1].Has(core.ActionPointer) {
		t.Error("pointer press delivered twice")
	}
}

func TestGameModelRestartGoesToGame(t *testing.T) {
	m, g := newScriptedModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if m.State().GameOver {
		t.Error("restart key did not reach the game")
	}
	if g.resets != 1 {
		t.Errorf("platform reset the game %d times, want only the initial reset", g.resets)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	m, _ := newScriptedModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.BackToMenu() {
		t.Fatal("back accepted while playing")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("back not accepted after game over")
	}
}

func TestGameModelConfigReload(t *testing.T) {
	m, g := newScriptedModel(t, nil)

	cfg := config.DefaultRunnerConfig()
	cfg.World.Gravity = 1234
	m = update(t, m, ConfigReloadedMsg{Config: cfg})

	if len(g.retuned) != 1 || g.retuned[0].World.Gravity != 1234 {
		t.Errorf("retuned = %+v", g.retuned)
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	m, g := newScriptedModel(t, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Error("resize restarted the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}
