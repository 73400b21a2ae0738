package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// GameOptions are the per-player settings of a game model.
type GameOptions struct {
	Player string      // name stored with saved scores
	Logger *log.Logger // defaults to a discard logger
	Store  *storage.Store
}

// GameModel runs one game: it feeds input frames to the game at a fixed
// tick, saves finished runs and can hand control back to a menu.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	player     string
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	exitOnBack bool // leave the program instead of waiting for a parent model
	scoreSaved bool // score of the current game over already stored
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		player:     opts.Player,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "player", m.player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, m.screen.Width(), m.screen.Height(), &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		// The game lives in world coordinates, so a resize only changes the view.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigReloadedMsg:
		if r, ok := m.game.(registry.Retuner); ok {
			r.Retune(msg.Config)
			m.logger.Info("config reloaded", "game", m.game.ID())
		}
		return m, nil

	case ConfigErrorMsg:
		m.logger.Error("config reload failed", "err", msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keyMapper.Game.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKey(msg) == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, s := range result.Sounds {
		m.logger.Debug("sound", "key", s)
	}

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the finished run. Empty runs are not recorded.
func (m *GameModel) saveScore() {
	score := m.gameState.RecordedScore()
	if score <= 0 || m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, score); err != nil {
		m.logger.Error("saving score failed", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "player", m.player, "score", score)
}

// saveScreenshot writes the current screen to ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state observed at the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// RunOptions configure a local game run.
type RunOptions struct {
	GameOptions
	// WatchPath, when set, is a config file reloaded into the running game
	// whenever it changes.
	WatchPath string
}

// Run plays a game in the local terminal until the player quits or goes
// back to the menu. It returns true when the player asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts.GameOptions)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if opts.WatchPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go watchConfig(ctx, p, opts.WatchPath, model.logger)
	}

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}

// watchConfig forwards config file changes to the program.
func watchConfig(ctx context.Context, p *tea.Program, path string, logger *log.Logger) {
	err := config.Watch(ctx, path,
		func(cfg config.RunnerConfig) { p.Send(ConfigReloadedMsg{Config: cfg}) },
		func(err error) { p.Send(ConfigErrorMsg{Err: err}) },
	)
	if err != nil {
		logger.Error("config watch stopped", "path", path, "err", err)
	}
}
