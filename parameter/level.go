package parameter

import "time"

// Formation Capacity
const (
	// MaxFormationRanks is the fixed rank count of a formation
	MaxFormationRanks = 8

	// MaxSlotsPerRank is the fixed slot count of a rank
	MaxSlotsPerRank = 10

	// NrFillFromRanks is the fill-from list capacity of a slot
	NrFillFromRanks = 3
)

// Level Progression
const (
	// ClearingDelay is the pause between a cleared level and the next one
	ClearingDelay = 2 * time.Second

	// SpeedScalePerLevelFloat is added to the formation speed factor per ordinal
	SpeedScalePerLevelFloat = 0.15

	// AttackChanceScalePerLevelFloat is added to the attack probability per ordinal
	AttackChanceScalePerLevelFloat = 0.05

	// WarpAroundSpawnsEnemy is the default warp penalty policy
	WarpAroundSpawnsEnemy = false
)
