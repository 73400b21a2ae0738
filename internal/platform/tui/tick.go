// Package tui runs games in the terminal with Bubble Tea, locally or over
// SSH. It maps keys and mouse presses to game actions, paces the fixed tick
// and persists finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config config.RunnerConfig
}

// ConfigErrorMsg reports a config file that changed but could not be used.
type ConfigErrorMsg struct {
	Err error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
