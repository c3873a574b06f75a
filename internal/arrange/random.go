package arrange

import (
	"dupe-arranger/internal/model"

	"github.com/go-gl/mathgl/mgl64"
)

// AxisRange bounds a per-axis random draw. Locked axes keep the template's value.
type AxisRange struct {
	Min, Max            float64
	LockX, LockY, LockZ bool
}

func (r AxisRange) locks() [3]bool {
	return [3]bool{r.LockX, r.LockY, r.LockZ}
}

func (r AxisRange) validate(field string) error {
	if err := finite(field+" range", r.Min, r.Max); err != nil {
		return err
	}
	if r.Min > r.Max {
		return model.Invalidf("arrange: %s min %g exceeds max %g", field, r.Min, r.Max)
	}
	return nil
}

func (r AxisRange) draw(rng Source) float64 {
	return r.Min + (r.Max-r.Min)*rng.Float64()
}

// RotationLocks keeps the template's pitch (X), yaw (Y) or roll (Z).
type RotationLocks struct {
	LockPitch, LockYaw, LockRoll bool
}

func (l RotationLocks) locks() [3]bool {
	return [3]bool{l.LockPitch, l.LockYaw, l.LockRoll}
}

// Random scatters copies. A nil channel is not randomized and emits its
// identity value (zero position, zero rotation, unit scale).
type Random struct {
	Position *AxisRange
	Rotation *RotationLocks
	Scale    *AxisRange
}

func (Random) Mode() Mode { return ModeRandom }

func (r Random) Validate() error {
	if r.Position != nil {
		if err := r.Position.validate("position"); err != nil {
			return err
		}
	}
	if r.Scale != nil {
		if err := r.Scale.validate("scale"); err != nil {
			return err
		}
	}
	return nil
}

func (r Random) Placements(count int, base model.Transform, rng Source) ([]model.Transform, error) {
	if err := checkCount(ModeRandom, count); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, model.Invalidf("arrange: random arrangement needs a random source")
	}

	out := make([]model.Transform, count)
	for i := range out {
		t := model.IdentityTransform()
		if r.Position != nil {
			t.Position = r.position(base.Position, rng)
		}
		if r.Rotation != nil {
			t.Rotation = r.rotation(base.Rotation, rng)
		}
		if r.Scale != nil {
			t.Scale = r.scale(base.Scale, rng)
		}
		out[i] = t
	}
	return out, nil
}

// position offsets each unlocked axis by a draw whose sign is flipped half the time.
func (r Random) position(base mgl64.Vec3, rng Source) mgl64.Vec3 {
	p := base
	for axis, locked := range r.Position.locks() {
		if locked {
			continue
		}
		d := r.Position.draw(rng)
		if rng.Float64() < 0.5 {
			d = -d
		}
		p[axis] += d
	}
	return p
}

func (r Random) rotation(base mgl64.Vec3, rng Source) mgl64.Vec3 {
	e := base
	for axis, locked := range r.Rotation.locks() {
		if !locked {
			e[axis] = 360 * rng.Float64()
		}
	}
	return e
}

func (r Random) scale(base mgl64.Vec3, rng Source) mgl64.Vec3 {
	s := base
	for axis, locked := range r.Scale.locks() {
		if !locked {
			s[axis] = r.Scale.draw(rng)
		}
	}
	return s
}
