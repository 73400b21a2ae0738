// Package config provides YAML-based game configuration loading and
// difficulty management for the runner games.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all configuration for the runner games.
// Distances are in world pixels, velocities in pixels per second.
type RunnerConfig struct {
	World      RunnerWorld      `yaml:"world"`
	Player     RunnerPlayer     `yaml:"player"`
	Enemy      RunnerEnemy      `yaml:"enemy"`
	Ground     RunnerGround     `yaml:"ground"`
	Spawn      RunnerSpawn      `yaml:"spawn"`
	Score      RunnerScore      `yaml:"score"`
	Restart    RunnerRestart    `yaml:"restart"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerWorld defines the play area and global physics.
type RunnerWorld struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
}

// RunnerPlayer defines the player body and jump.
type RunnerPlayer struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Bounce       float64 `yaml:"bounce"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	RestSpeed    float64 `yaml:"rest_speed"` // Bounces slower than this settle on the ground
}

// RunnerEnemy defines enemy bodies and their lifetime.
type RunnerEnemy struct {
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnY    float64 `yaml:"spawn_y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	VelocityX float64 `yaml:"velocity_x"`
	DespawnX  float64 `yaml:"despawn_x"` // Enemies at or left of this x are removed
}

// RunnerGround defines the static ground collider.
type RunnerGround struct {
	Y float64 `yaml:"y"` // Top edge
}

// RunnerSpawn defines the enemy spawn cadence.
type RunnerSpawn struct {
	InitialDelayMS int `yaml:"initial_delay_ms"`
	MinDelayMS     int `yaml:"min_delay_ms"`
	MaxDelayMS     int `yaml:"max_delay_ms"`
}

// RunnerScore defines the time-based score.
type RunnerScore struct {
	IntervalMS int    `yaml:"interval_ms"`
	Label      string `yaml:"label"`
}

// RestartTrigger selects what restarts the game after game over.
type RestartTrigger string

const (
	// RestartButton restarts when the retry control is activated.
	RestartButton RestartTrigger = "button"
	// RestartPointer restarts on any pointer press or jump key.
	RestartPointer RestartTrigger = "pointer"
)

// RunnerRestart defines how a finished run is restarted.
type RunnerRestart struct {
	Trigger RestartTrigger `yaml:"trigger"`
}

// InitialDelay returns the delay before the first spawn.
func (s RunnerSpawn) InitialDelay() time.Duration {
	return time.Duration(s.InitialDelayMS) * time.Millisecond
}

// Interval returns the score tick interval.
func (s RunnerScore) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Validate reports every inconsistent value in the config.
func (c RunnerConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Enemy.Width <= 0 || c.Enemy.Height <= 0 {
		errs = append(errs, errors.New("enemy size must be positive"))
	}
	if c.Spawn.InitialDelayMS <= 0 || c.Spawn.MinDelayMS <= 0 {
		errs = append(errs, errors.New("spawn delays must be positive"))
	}
	if c.Spawn.MaxDelayMS < c.Spawn.MinDelayMS {
		errs = append(errs, fmt.Errorf("spawn max_delay_ms %d is below min_delay_ms %d", c.Spawn.MaxDelayMS, c.Spawn.MinDelayMS))
	}
	if c.Score.IntervalMS <= 0 {
		errs = append(errs, errors.New("score interval_ms must be positive"))
	}
	switch c.Restart.Trigger {
	case RestartButton, RestartPointer:
	default:
		errs = append(errs, fmt.Errorf("unknown restart trigger %q", c.Restart.Trigger))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score, or milliseconds played, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`   // Multiplier added to enemy speed at max difficulty
	DelayReductionMS int     `yaml:"delay_reduction_ms"` // Max spawn delay reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown or empty
// values return "" which keeps the config's own difficulty settings.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
