package arrange

import (
	"dupe-arranger/internal/model"

	"github.com/go-gl/mathgl/mgl64"
)

// Circle spreads copies evenly along an arc around the template's position.
type Circle struct {
	Radius       float64
	Orientation  Orientation
	Arc          Arc
	LookAtCenter bool
}

func (Circle) Mode() Mode { return ModeCircle }

func (c Circle) Validate() error {
	if err := nonNegative("circle radius", c.Radius); err != nil {
		return err
	}
	if !c.Orientation.valid() {
		return model.Invalidf("arrange: circle orientation %d unknown", int(c.Orientation))
	}
	if !c.Arc.valid() {
		return model.Invalidf("arrange: circle arc %d unknown", int(c.Arc))
	}
	return nil
}

// AngleStep is the spacing in degrees between neighbouring copies. A full
// circle divides by count so the last copy does not overlap the first; partial
// arcs divide by count-1 so both ends are occupied. A single copy gets 0.
func (c Circle) AngleStep(count int) float64 {
	if count <= 1 {
		return 0
	}
	slots := count - 1
	if c.Arc == Full {
		slots = count
	}
	return c.Arc.Degrees() / float64(slots)
}

func (c Circle) Placements(count int, base model.Transform, _ Source) ([]model.Transform, error) {
	if err := checkCount(ModeCircle, count); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	step := c.AngleStep(count)
	out := make([]model.Transform, count)
	for i := range out {
		angle := step * float64(i)
		rot := base.Rotation
		if c.LookAtCenter {
			rot = c.facing(base.Rotation, angle)
		}
		out[i] = model.Transform{
			Position: Radial(c.Orientation, base.Position, c.Radius, angle),
			Rotation: rot,
			Scale:    base.Scale,
		}
	}
	return out, nil
}

// facing turns a copy at angle toward the centre, keeping the template's pitch.
func (c Circle) facing(orig mgl64.Vec3, angle float64) mgl64.Vec3 {
	switch c.Orientation {
	case AxisX:
		return mgl64.Vec3{orig[0], 90, angle}
	case AxisY:
		return mgl64.Vec3{orig[0], -angle, -90}
	default:
		return mgl64.Vec3{orig[0], orig[1], angle - 90}
	}
}
