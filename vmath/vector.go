package vmath

import "math"

// Vec2 is a 2D vector with Q32.32 components
type Vec2 struct {
	X, Y int64
}

// V returns a Vec2 from float components
func V(x, y float64) Vec2 {
	return Vec2{X: FromFloat(x), Y: FromFloat(y)}
}

// VInt returns a Vec2 from integer components
func VInt(x, y int) Vec2 {
	return Vec2{X: FromInt(x), Y: FromInt(y)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Neg() Vec2       { return Vec2{-v.X, -v.Y} }

// Scale multiplies both components by a Q32.32 factor
func (v Vec2) Scale(f int64) Vec2 {
	return Vec2{Mul(v.X, f), Mul(v.Y, f)}
}

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Dot returns x1*x2 + y1*y2 in Q32.32
func (v Vec2) Dot(o Vec2) int64 {
	return Mul(v.X, o.X) + Mul(v.Y, o.Y)
}

// LenSq returns squared magnitude without sqrt
func (v Vec2) LenSq() int64 {
	return Mul(v.X, v.X) + Mul(v.Y, v.Y)
}

// Len returns true Euclidean length
func (v Vec2) Len() int64 {
	return Sqrt(v.LenSq())
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{Div(v.X, mag), Div(v.Y, mag)}
}

// ClampLen limits the vector to maxLen while preserving direction
func (v Vec2) ClampLen(maxLen int64) Vec2 {
	mag := v.Len()
	if mag <= maxLen || mag == 0 {
		return v
	}
	return v.Scale(Div(maxLen, mag))
}

// Angle returns the heading in radians, 0 pointing along +X
// Used only for drawing orientation
func (v Vec2) Angle() float64 {
	if v.IsZero() {
		return 0
	}
	return math.Atan2(ToFloat(v.Y), ToFloat(v.X))
}

// Floats returns the components as float64
func (v Vec2) Floats() (float64, float64) {
	return ToFloat(v.X), ToFloat(v.Y)
}
