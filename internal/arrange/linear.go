package arrange

import (
	"dupe-arranger/internal/model"

	"github.com/go-gl/mathgl/mgl64"
)

// Linear steps every copy by a fixed offset. Copy i (1-based) gets
// position base+offset*i, rotation offset*i and scale base+offset*i.
type Linear struct {
	PositionOffset mgl64.Vec3
	RotationOffset mgl64.Vec3
	ScaleOffset    mgl64.Vec3
}

func (Linear) Mode() Mode { return ModeLinear }

func (l Linear) Validate() error {
	if err := finiteVec("position offset", l.PositionOffset); err != nil {
		return err
	}
	if err := finiteVec("rotation offset", l.RotationOffset); err != nil {
		return err
	}
	return finiteVec("scale offset", l.ScaleOffset)
}

func (l Linear) Placements(count int, base model.Transform, _ Source) ([]model.Transform, error) {
	if err := checkCount(ModeLinear, count); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	out := make([]model.Transform, count)
	for i := range out {
		step := float64(i + 1)
		out[i] = model.Transform{
			Position: base.Position.Add(l.PositionOffset.Mul(step)),
			Rotation: l.RotationOffset.Mul(step),
			Scale:    base.Scale.Add(l.ScaleOffset.Mul(step)),
		}
	}
	return out, nil
}
