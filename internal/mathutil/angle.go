package mathutil

import "math"

// WrapAngle maps an angle in degrees into (-180, 180].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}
