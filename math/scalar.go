package math

import "github.com/chewxy/math32"

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves current toward target by min(rate, 1) of the remaining gap.
func Approach(current, target, rate float32) float32 {
	return current + (target-current)*math32.Min(rate, 1)
}

func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// WrapAngle maps a into (-pi, pi].
func WrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
