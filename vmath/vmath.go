package vmath

import (
	"math"
	"math/bits"
	"time"
)

// Q32.32 Fixed Point constants
const (
	Shift  = 32
	Scale  = 1 << Shift
	Half   = 1 << (Shift - 1)
	ScaleF = float64(Scale)
)

// --- Arithmetic ---

func FromInt(i int) int64       { return int64(i) << Shift }
func ToInt(f int64) int         { return int(f >> Shift) }
func FromFloat(f float64) int64 { return int64(f * Scale) }
func ToFloat(f int64) float64   { return float64(f) / Scale }

// Round returns the nearest integer, halves rounded up
func Round(f int64) int { return int((f + Half) >> Shift) }

func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	hi, lo := bits.Mul64(ua, ub)
	// Q32.32 * Q32.32 = Q64.64, shift right 32 for Q32.32
	result := int64((hi << 32) | (lo >> 32))

	if negative {
		return -result
	}
	return result
}

// Div returns a/b, saturating on overflow; division by zero yields 0
func Div(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	// a << 32 as 128-bit: hi = a >> 32, lo = a << 32
	hi := ua >> 32
	lo := ua << 32

	// Quotient would not fit in 64 bits
	if hi >= ub {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	quo, _ := bits.Div64(hi, lo, ub)

	if quo > math.MaxInt64 {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	if negative {
		return -int64(quo)
	}
	return int64(quo)
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1 for negative values and +1 otherwise
// Zero counts as non-negative
func Sign(x int64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sqrt returns the Q32.32 square root
// Lifted to float for accuracy over the full playfield range
func Sqrt(x int64) int64 {
	if x <= 0 {
		return 0
	}
	return FromFloat(math.Sqrt(ToFloat(x)))
}

// --- Randomness ---

// FastRand is a xorshift64 generator; same seed gives the same sequence
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Chance returns true with probability p (Q32.32, Scale = certain)
func (r *FastRand) Chance(p int64) bool {
	if p <= 0 {
		return false
	}
	if p >= Scale {
		return true
	}
	return int64(r.Next()&(Scale-1)) < p
}

// FromDuration converts a duration into Q32.32 seconds
func FromDuration(d time.Duration) int64 {
	whole := int64(d / time.Second)
	frac := int64(d % time.Second)
	return whole<<Shift + frac*Scale/int64(time.Second)
}
