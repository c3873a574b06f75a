package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the local axis a copy "faces" along.
var Forward = mgl64.Vec3{0, 0, 1}

// EulerToMat3 builds a rotation matrix from Euler angles in degrees.
// Z is applied first, then X, then Y: R = Ry · Rx · Rz.
func EulerToMat3(e mgl64.Vec3) mgl64.Mat3 {
	ry := mgl64.Rotate3DY(mgl64.DegToRad(e[1]))
	rx := mgl64.Rotate3DX(mgl64.DegToRad(e[0]))
	rz := mgl64.Rotate3DZ(mgl64.DegToRad(e[2]))
	return ry.Mul3(rx).Mul3(rz)
}

// Mat3ToEuler is the inverse of EulerToMat3. Angles are degrees in (-180, 180].
// At ±90° pitch the roll folds into yaw and is reported as 0.
func Mat3ToEuler(m mgl64.Mat3) mgl64.Vec3 {
	sx := mgl64.Clamp(-m.At(1, 2), -1, 1)
	x := math.Asin(sx)

	var y, z float64
	if math.Abs(sx) < 1-1e-9 {
		y = math.Atan2(m.At(0, 2), m.At(2, 2))
		z = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		y = math.Atan2(-m.At(2, 0), m.At(0, 0))
	}

	return mgl64.Vec3{
		WrapAngle(mgl64.RadToDeg(x)),
		WrapAngle(mgl64.RadToDeg(y)),
		WrapAngle(mgl64.RadToDeg(z)),
	}
}

// LookRotation returns the rotation whose Forward axis points along dir, keeping
// the local Y axis as close to up as possible. ok is false for a zero direction.
func LookRotation(dir, up mgl64.Vec3) (m mgl64.Mat3, ok bool) {
	if dir.Len() < 1e-12 {
		return mgl64.Ident3(), false
	}
	fwd := dir.Normalize()

	right := up.Cross(fwd)
	if right.Len() < 1e-9 {
		// up is parallel to the view direction; pick any perpendicular
		alt := mgl64.Vec3{1, 0, 0}
		if math.Abs(fwd[0]) > 0.9 {
			alt = mgl64.Vec3{0, 0, 1}
		}
		right = alt.Cross(fwd)
	}
	right = right.Normalize()
	newUp := fwd.Cross(right)

	return mgl64.Mat3FromCols(right, newUp, fwd), true
}

// LookAtEuler returns Euler degrees turning an object at from to face to.
// When from and to coincide, fallback is returned unchanged.
func LookAtEuler(from, to, up, fallback mgl64.Vec3) mgl64.Vec3 {
	m, ok := LookRotation(to.Sub(from), up)
	if !ok {
		return fallback
	}
	return Mat3ToEuler(m)
}
