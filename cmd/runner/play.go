package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a runner variant",
	Long: `Start playing the given variant (runner when omitted).

Controls:
  Space/Up/W   - Jump
  Mouse click  - Jump (tap variant) or press the retry button
  Enter/R      - Retry after game over
  P            - Pause
  Esc/B        - Leave (while paused or after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression (default)

With --watch, changes to the --config file apply to the running game.

Examples:
  runner play
  runner play runner_tap
  runner play runner_rush --difficulty hard
  runner play --config ./runner.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config into the running game when it changes")
}

func gameArg(args []string) (string, error) {
	gameID := "runner"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown game %q, run 'runner list' to see the variants", gameID)
	}
	return gameID, nil
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}
	if flagWatch && flagConfig == "" {
		return fmt.Errorf("--watch needs --config")
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.RunOptions{
		GameOptions: tui.GameOptions{
			Player: flagPlayer,
			Logger: logger.WithPrefix("tui"),
			Store:  store,
		},
	}
	if flagWatch {
		opts.WatchPath = flagConfig
	}

	if _, err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
