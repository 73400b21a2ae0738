package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameTime returns the simulated time elapsed after the given number of ticks.
// Computing it from the tick count keeps long runs free of rounding drift.
func (c RuntimeConfig) FrameTime(ticks int64) time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(ticks) * time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int  // Current score
	FinalScore int  // Score reached by the last finished run (valid when GameOver)
	Best       int  // Best score since the game instance was created
	GameOver   bool // Whether the game has ended
	Paused     bool // Whether the game is paused
}

// RecordedScore returns the score that should be persisted for a finished run.
func (s GameState) RecordedScore() int {
	if s.FinalScore > s.Score {
		return s.FinalScore
	}
	return s.Score
}

// Sound identifies an audio cue by its asset key.
type Sound string

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any sound cues raised during the tick.
type StepResult struct {
	State  GameState
	Sounds []Sound
}
