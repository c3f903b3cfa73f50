package sim

import (
	"time"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/physics"
)

// Player is the single ship; one life, death ends the game
type Player struct {
	ID core.Entity
	physics.Kinetic
	Alive bool

	cooldown      time.Duration // Time until the next laser is allowed
	roundCooldown time.Duration // Time until the next round shot
}

// Laser is a player shot; single shots travel toward the top edge, round
// shot pellets radially
type Laser struct {
	ID core.Entity
	physics.Kinetic
	Active bool
}
