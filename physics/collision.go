package physics

import (
	"github.com/lixenwraith/void-ranks/vmath"
)

// Overlaps reports whether two circles touch
// dist is the sum of both radii in Q32.32 cells
func Overlaps(a, b vmath.Vec2, dist int64) bool {
	d := a.Sub(b)
	// Cheap reject before the squared check
	if vmath.Abs(d.X) > dist || vmath.Abs(d.Y) > dist {
		return false
	}
	return d.LenSq() <= vmath.Mul(dist, dist)
}
