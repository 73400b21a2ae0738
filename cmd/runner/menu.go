package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a runner variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Leaving a finished game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Scoreboard
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, flagPlayer, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, flagPlayer, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, cfg, tui.RunOptions{
			GameOptions: tui.GameOptions{
				Player: flagPlayer,
				Logger: logger.WithPrefix("tui"),
				Store:  store,
			},
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
