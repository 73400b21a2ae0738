// runner is a side-scrolling runner for the terminal, a desktop window or
// remote players over SSH.
//
// Usage:
//
//	runner list              - List the runner variants
//	runner play [game]       - Play a variant (default: runner)
//	runner menu              - Pick variants from a menu
//	runner window [game]     - Play in a desktop window
//	runner serve             - Start SSH server for remote play
//	runner scores <game>     - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/runner.db)
//	--config <path>       - Custom runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Log destination (default: ~/.arcade/runner.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagPlayer     string

	logger  = log.New(os.Stderr)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - jump over enemies in your terminal",
	Long: `Runner is a side-scrolling arcade game: jump over the enemies walking
towards you and score a point for every second you survive.

Available commands:
  list     - Show the runner variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  runner play
  runner play runner_rush --difficulty hard
  runner play --config ./runner.yaml --watch
  runner menu
  runner serve --ssh :2222
  runner scores runner`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	defaultPlayer := os.Getenv("USER")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runner.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/runner.log", "Log file (- for stderr)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer, "Name stored with your scores")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup opens the log and hands the shared settings to the runner games.
func setup(_ *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}

	out := os.Stderr
	if flagLogFile != "-" && flagLogFile != "" {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			return err
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})

	runner.SetLogger(logger.WithPrefix("game"))
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	return nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
