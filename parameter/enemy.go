package parameter

import "time"

// Enemy Capacity
const (
	// MaxEnemies is the fixed roster capacity; spawns beyond it are dropped
	MaxEnemies = 96
)

// Formation-bound Enemy
const (
	// SlotSeekSpeedFloat is the max individual speed toward the slot anchor in cells/sec
	SlotSeekSpeedFloat = 6.0

	// SlotSeekGainFloat converts anchor distance into desired speed (1/sec)
	SlotSeekGainFloat = 4.0
)

// Free-flight Enemy
const (
	// BreakoutSpeedFloat is the minimum speed given to an enemy leaving its slot
	BreakoutSpeedFloat = 8.0

	// FreeMaxSpeedFloat caps free-flight speed in cells/sec
	FreeMaxSpeedFloat = 12.0

	// WanderAccelFloat scales the noise steering acceleration in cells/sec²
	WanderAccelFloat = 10.0

	// WanderFrequencyFloat is the noise sampling rate over elapsed seconds
	WanderFrequencyFloat = 0.8

	// FreeDwell is the time spent in free flight before an attack roll
	FreeDwell = 1500 * time.Millisecond

	// OffscreenTimeout despawns free enemies that stay outside the playfield
	OffscreenTimeout = 3 * time.Second

	// EnemyLifetime despawns free enemies regardless of position; 0 disables
	EnemyLifetime = 30 * time.Second
)

// Attack Run
const (
	// AttackSpeedFloat is the dive speed toward the captured target in cells/sec
	AttackSpeedFloat = 18.0

	// AttackDuration time-boxes an attack run before returning to free flight
	AttackDuration = 1200 * time.Millisecond

	// AttackRangeFloat is the player distance in cells within which attacks are considered
	AttackRangeFloat = 40.0
)

// Collision radii in cells
const (
	EnemyRadiusFloat  = 0.8
	PlayerRadiusFloat = 0.8
	LaserRadiusFloat  = 0.5
)
