package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var flagMine bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a variant",
	Long: `Display the top 10 high scores for the given variant.

Examples:
  runner scores runner
  runner scores runner_tap --mine`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Only show scores of --player")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if flagMine {
		scores, err = store.PlayerScores(gameID, flagPlayer, 10)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Players: %d  Avg: %.1f\n", stats.HighScore, stats.GamesCount, stats.Players, stats.AvgScore)
	}
	return nil
}
