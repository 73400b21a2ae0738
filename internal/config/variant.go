package config

// RunnerVariant names one of the runner rule sets. They share every
// mechanic and differ only in a handful of constants.
type RunnerVariant string

const (
	// VariantClassic is the reference rule set: retry button, random spawns.
	VariantClassic RunnerVariant = "classic"
	// VariantTap restarts on any tap and spawns at a fixed cadence.
	VariantTap RunnerVariant = "tap"
	// VariantRush jumps higher and spawns enemies sooner.
	VariantRush RunnerVariant = "rush"
)

// ApplyVariant overrides the constants that distinguish a variant.
// The classic variant keeps the loaded values untouched.
func ApplyVariant(cfg *RunnerConfig, v RunnerVariant) {
	switch v {
	case VariantTap:
		cfg.Player.JumpVelocity = -400
		cfg.Spawn.InitialDelayMS = 2000
		cfg.Spawn.MinDelayMS = 2000
		cfg.Spawn.MaxDelayMS = 2000
		cfg.Restart.Trigger = RestartPointer
	case VariantRush:
		cfg.Player.JumpVelocity = -500
		cfg.Spawn.MinDelayMS = 800
		cfg.Spawn.MaxDelayMS = 3000
		cfg.Restart.Trigger = RestartButton
	}
}
