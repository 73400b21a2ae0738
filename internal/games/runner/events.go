package runner

import (
	"time"

	"github.com/yohamta/donburi"
)

// Event is something that happens to a session. The set of events is closed.
type Event interface {
	runnerEvent()
}

// JumpRequested asks for a jump on the next tick.
type JumpRequested struct{}

// RestartRequested asks to start a new run. It is ignored while playing.
type RestartRequested struct{}

// Tick advances the session by Dt.
type Tick struct {
	Dt time.Duration
}

// EnemyOverlap reports that the player touches an enemy.
type EnemyOverlap struct {
	Enemy donburi.Entity
}

func (JumpRequested) runnerEvent()    {}
func (RestartRequested) runnerEvent() {}
func (Tick) runnerEvent()             {}
func (EnemyOverlap) runnerEvent()     {}
