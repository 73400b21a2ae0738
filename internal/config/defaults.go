package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is the last fallback of the loader.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: RunnerWorld{
			Width:   800,
			Height:  300,
			Gravity: 1000,
		},
		Player: RunnerPlayer{
			X:            80,
			Y:            100,
			Width:        42, // 14px hitbox at 3x scale
			Height:       72,
			Bounce:       0.1,
			JumpVelocity: -450,
			RestSpeed:    50,
		},
		Enemy: RunnerEnemy{
			SpawnX:    800,
			SpawnY:    200,
			Width:     36,
			Height:    60,
			VelocityX: -300,
			DespawnX:  -100,
		},
		Ground: RunnerGround{
			Y: 288,
		},
		Spawn: RunnerSpawn{
			InitialDelayMS: 1000,
			MinDelayMS:     1000,
			MaxDelayMS:     3000,
		},
		Score: RunnerScore{
			IntervalMS: 1000,
			Label:      "Puntos",
		},
		Restart: RunnerRestart{
			Trigger: RestartButton,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120000, // two minutes of play
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				DelayReductionMS: 1500,
			},
		},
	}
}
