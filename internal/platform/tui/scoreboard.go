package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mine     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "my runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel shows the saved runs of one variant at a time, either
// everyone's or only the current player's.
type ScoreboardModel struct {
	games     []registry.GameInfo
	current   int
	store     *storage.Store
	player    string
	mine      bool // only the player's runs
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. Rows of player are
// marked in the table.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Date", Width: 12},
	}
	// Spare width goes to the player name.
	if spare := m.width - 50; spare > 0 {
		columns[1].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the runs of the current variant from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		gameID := m.games[m.current].ID

		var err error
		if m.mine {
			m.scores, err = m.store.PlayerScores(gameID, m.player, maxScores)
		} else {
			m.scores, err = m.store.TopScores(gameID, maxScores)
		}
		if err != nil {
			m.scores = nil
		}
		m.stats, _ = m.store.GetGameStats(gameID)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		name := s.Player
		if !m.mine && m.player != "" && s.Player == m.player {
			name = "* " + name
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cycle(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cycle(-1)
			return m, nil

		case key.Matches(msg, m.keys.Mine):
			if m.player != "" {
				m.mine = !m.mine
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + step + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.mine {
		title = "MY RUNS"
	}
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.games) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		line := fmt.Sprintf("best %d, %d runs by %d players, average %.1f",
			m.stats.HighScore, m.stats.GamesCount, m.stats.Players, m.stats.AvgScore)
		b.WriteString(centerText(boardDimStyle.Render(line), m.width))
	}
	b.WriteString("\n")

	content := m.table.View()
	if len(m.scores) == 0 {
		content = boardDimStyle.Italic(true).Padding(1, 4).
			Render("No runs recorded yet.\nFinish a run to set a high score!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(content)))

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
