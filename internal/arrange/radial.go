package arrange

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// radialOffset shifts every angle so that 0° lands at the top of the circle.
const radialOffset = -90.0

// Radial returns the point at angleDeg on the circle of radius around center,
// in the plane perpendicular to o. The coordinate along o keeps center's value.
func Radial(o Orientation, center mgl64.Vec3, radius, angleDeg float64) mgl64.Vec3 {
	sin, cos := math.Sincos(mgl64.DegToRad(angleDeg + radialOffset))
	p := center
	switch o {
	case AxisX:
		p[1] = center[1] - radius*sin
		p[2] = center[2] + radius*cos
	case AxisY:
		p[0] = center[0] - radius*sin
		p[2] = center[2] + radius*cos
	case AxisZ:
		p[0] = center[0] - radius*sin
		p[1] = center[1] + radius*cos
	}
	return p
}
