package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a position, Euler rotation (degrees) and scale.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// IdentityTransform returns zero position, zero rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// ApproxEqual compares all three channels component-wise with an absolute tolerance.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	return near(t.Position, o.Position, tol) &&
		near(t.Rotation, o.Rotation, tol) &&
		near(t.Scale, o.Scale, tol)
}

func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
