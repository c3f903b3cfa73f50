package enemy

import (
	"time"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/physics"
)

// Kind distinguishes how an enemy entered the level
type Kind uint8

const (
	// KindRanked enemies are created by formation population
	KindRanked Kind = iota
	// KindRaider enemies are scripted or warp-penalty spawns that start in free flight
	KindRaider
)

func (k Kind) String() string {
	if k == KindRaider {
		return "raider"
	}
	return "ranked"
}

// Enemy is one hostile ship
// The formation back-reference lives inside Mode (InFormation) and is ID based
type Enemy struct {
	ID core.Entity
	physics.Kinetic

	Kind Kind
	Mode Mode

	Age       time.Duration
	Offscreen time.Duration // Continuous time spent outside the playfield
}

// Alive reports whether the enemy still takes part in the simulation
func (e *Enemy) Alive() bool {
	return e.Mode != nil && e.Mode.Kind() != ModeDestroyed
}

// ModeKind returns the current mode tag
func (e *Enemy) ModeKind() ModeKind {
	if e.Mode == nil {
		return ModeDestroyed
	}
	return e.Mode.Kind()
}
