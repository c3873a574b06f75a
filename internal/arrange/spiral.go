package arrange

import (
	"dupe-arranger/internal/mathutil"
	"dupe-arranger/internal/model"
)

// Spiral winds copies outward around an origin that climbs along the
// orientation axis. For copy i of n (1-based) the origin advances by
// Height*i/n (cumulatively), the radius is Radius*i/n and the angle is
// CurveAmount*i/2 degrees.
type Spiral struct {
	Radius       float64
	CurveAmount  float64
	Height       float64
	Orientation  Orientation
	LookAtCenter bool
}

func (Spiral) Mode() Mode { return ModeSpiral }

func (s Spiral) Validate() error {
	if err := nonNegative("spiral radius", s.Radius); err != nil {
		return err
	}
	if err := nonNegative("spiral curve", s.CurveAmount); err != nil {
		return err
	}
	if err := nonNegative("spiral height", s.Height); err != nil {
		return err
	}
	if !s.Orientation.valid() {
		return model.Invalidf("arrange: spiral orientation %d unknown", int(s.Orientation))
	}
	return nil
}

func (s Spiral) Placements(count int, base model.Transform, _ Source) ([]model.Transform, error) {
	if err := checkCount(ModeSpiral, count); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	axis := s.Orientation.Axis()
	origin := base.Position
	n := float64(count)

	out := make([]model.Transform, count)
	for i := range out {
		step := float64(i + 1)
		frac := step / n
		origin = origin.Add(axis.Mul(s.Height * frac))

		pos := Radial(s.Orientation, origin, s.Radius*frac, s.CurveAmount*0.5*step)
		rot := base.Rotation
		if s.LookAtCenter {
			rot = mathutil.LookAtEuler(pos, origin, axis, base.Rotation)
		}
		out[i] = model.Transform{
			Position: pos,
			Rotation: rot,
			Scale:    base.Scale,
		}
	}
	return out, nil
}
