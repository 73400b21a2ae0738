package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/window"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play a runner variant in a desktop window",
	Long: `Open a desktop window and play the given variant (runner when omitted).

Keyboard controls match the terminal. Mouse clicks and touches count as
pointer presses: they jump in the tap variant and press the retry button.

Examples:
  runner window
  runner window runner_tap --scale 1.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window pixels per world pixel")
}

func runWindow(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return window.Run(game, runtimeConfig(), window.Options{
		Player: flagPlayer,
		Store:  store,
		Logger: logger.WithPrefix("window"),
		Scale:  flagScale,
	})
}
