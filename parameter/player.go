package parameter

import "time"

// Player Ship
const (
	// PlayerThrustFloat is acceleration per held direction in cells/sec²
	PlayerThrustFloat = 60.0

	// PlayerMaxSpeedFloat caps ship speed in cells/sec
	PlayerMaxSpeedFloat = 30.0

	// PlayerDragFloat is the fraction of velocity shed per second with no thrust
	PlayerDragFloat = 2.5

	// PlayerStartRow is the spawn row measured up from the bottom edge
	PlayerStartRow = 3
)

// Laser
const (
	// LaserSpeedFloat is laser speed in cells/sec
	LaserSpeedFloat = 45.0

	// LaserCooldown is the minimum gap between shots
	LaserCooldown = 150 * time.Millisecond

	// MaxLasers caps simultaneously live lasers, round shot pellets included
	MaxLasers = 16

	// RoundShotCount is the number of lasers in one radial burst
	RoundShotCount = 8

	// RoundShotCooldown is the minimum gap between bursts
	RoundShotCooldown = 600 * time.Millisecond
)
