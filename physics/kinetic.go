package physics

import (
	"github.com/lixenwraith/void-ranks/vmath"
)

// Kinetic is the position/velocity pair shared by every moving body
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

// Bounds is an axis-aligned playfield rectangle [Min, Max) in Q32.32 cells
type Bounds struct {
	Min vmath.Vec2
	Max vmath.Vec2
}

// NewBounds returns bounds covering [0, width) x [0, height)
func NewBounds(width, height int) Bounds {
	return Bounds{Max: vmath.VInt(width, height)}
}

// Contains reports whether p lies inside the bounds
func (b Bounds) Contains(p vmath.Vec2) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Width returns the horizontal extent
func (b Bounds) Width() int64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent
func (b Bounds) Height() int64 { return b.Max.Y - b.Min.Y }

// Integrate performs p = p + v*dt
func Integrate(k *Kinetic, dt int64) {
	k.Pos = k.Pos.Add(k.Vel.Scale(dt))
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(k *Kinetic, dv vmath.Vec2) {
	k.Vel = k.Vel.Add(dv)
}

// ReflectBoundsX handles horizontal boundary collision, returns true if reflection occurred
func ReflectBoundsX(k *Kinetic, b Bounds) bool {
	if k.Pos.X < b.Min.X {
		k.Pos.X = b.Min.X
		k.Vel.X = vmath.Abs(k.Vel.X)
		return true
	}
	if k.Pos.X >= b.Max.X {
		k.Pos.X = b.Max.X - 1
		k.Vel.X = -vmath.Abs(k.Vel.X)
		return true
	}
	return false
}

// ReflectBoundsY handles vertical boundary collision, returns true if reflection occurred
func ReflectBoundsY(k *Kinetic, b Bounds) bool {
	if k.Pos.Y < b.Min.Y {
		k.Pos.Y = b.Min.Y
		k.Vel.Y = vmath.Abs(k.Vel.Y)
		return true
	}
	if k.Pos.Y >= b.Max.Y {
		k.Pos.Y = b.Max.Y - 1
		k.Vel.Y = -vmath.Abs(k.Vel.Y)
		return true
	}
	return false
}

// ReflectBounds handles both axis boundary collisions, returns true if any reflection occurred
func ReflectBounds(k *Kinetic, b Bounds) bool {
	rx := ReflectBoundsX(k, b)
	ry := ReflectBoundsY(k, b)
	return rx || ry
}

// WrapBounds moves a body that left the bounds to the opposite edge
// Velocity is preserved; returns true if the body wrapped on either axis
func WrapBounds(k *Kinetic, b Bounds) bool {
	wrapped := false
	if w := b.Width(); w > 0 {
		for k.Pos.X < b.Min.X {
			k.Pos.X += w
			wrapped = true
		}
		for k.Pos.X >= b.Max.X {
			k.Pos.X -= w
			wrapped = true
		}
	}
	if h := b.Height(); h > 0 {
		for k.Pos.Y < b.Min.Y {
			k.Pos.Y += h
			wrapped = true
		}
		for k.Pos.Y >= b.Max.Y {
			k.Pos.Y -= h
			wrapped = true
		}
	}
	return wrapped
}
