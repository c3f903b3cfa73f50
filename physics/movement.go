package physics

import (
	"github.com/lixenwraith/void-ranks/vmath"
)

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(k *Kinetic, maxSpeed int64) bool {
	magSq := k.Vel.LenSq()
	maxSq := vmath.Mul(maxSpeed, maxSpeed)
	if magSq <= maxSq {
		return false
	}
	k.Vel = k.Vel.ClampLen(maxSpeed)
	return true
}

// Damp sheds a fraction of velocity per second: v *= max(0, 1 - drag*dt)
func Damp(k *Kinetic, drag, dt int64) {
	factor := vmath.Scale - vmath.Mul(drag, dt)
	if factor < 0 {
		factor = 0
	}
	k.Vel = k.Vel.Scale(factor)
}

// Seek returns a velocity steering from pos toward target
// Desired speed grows with distance by gain and is capped at maxSpeed
func Seek(pos, target vmath.Vec2, gain, maxSpeed int64) vmath.Vec2 {
	delta := target.Sub(pos)
	if delta.IsZero() {
		return vmath.Vec2{}
	}
	return delta.Scale(gain).ClampLen(maxSpeed)
}

// Toward returns a velocity of exactly speed pointing from pos to target
// Zero when pos == target
func Toward(pos, target vmath.Vec2, speed int64) vmath.Vec2 {
	return target.Sub(pos).Normalize().Scale(speed)
}
