package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// time played.
func (d *DifficultyManager) Level(score int, played time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(played.Milliseconds()) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base speed; at max difficulty it is base * (1 + speedMultiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score int, played time.Duration) float64 {
	level := d.Level(score, played)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// MaxDelay shortens the upper bound of the spawn delay range as difficulty
// rises. The result never drops below minDelay.
func (d *DifficultyManager) MaxDelay(maxDelay, minDelay time.Duration, score int, played time.Duration) time.Duration {
	level := d.Level(score, played)
	reduction := time.Duration(level*float64(d.cfg.Scaling.DelayReductionMS)) * time.Millisecond
	return max(maxDelay-reduction, minDelay)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
