package parameter

import "github.com/lixenwraith/void-ranks/vmath"

// Gravity Well
const (
	// WellEpsilonFloat is the minimum distance used by the inverse-square falloff
	WellEpsilonFloat = 0.5

	// MaxWells caps wells per level
	MaxWells = 4
)

// Pre-computed Q32.32 physics constants, initialized once and used by systems
var (
	WellEpsilon = vmath.FromFloat(WellEpsilonFloat)

	SlotSeekSpeed = vmath.FromFloat(SlotSeekSpeedFloat)
	SlotSeekGain  = vmath.FromFloat(SlotSeekGainFloat)

	BreakoutSpeed     = vmath.FromFloat(BreakoutSpeedFloat)
	FreeMaxSpeed      = vmath.FromFloat(FreeMaxSpeedFloat)
	WanderAccel       = vmath.FromFloat(WanderAccelFloat)
	AttackSpeed       = vmath.FromFloat(AttackSpeedFloat)
	AttackRange       = vmath.FromFloat(AttackRangeFloat)
	PlayerThrust      = vmath.FromFloat(PlayerThrustFloat)
	PlayerMaxSpeed    = vmath.FromFloat(PlayerMaxSpeedFloat)
	PlayerDrag        = vmath.FromFloat(PlayerDragFloat)
	LaserSpeed        = vmath.FromFloat(LaserSpeedFloat)
	EnemyHitDistance  = vmath.FromFloat(EnemyRadiusFloat + LaserRadiusFloat)
	PlayerHitDistance = vmath.FromFloat(EnemyRadiusFloat + PlayerRadiusFloat)
)
