package arrange

import (
	"fmt"

	"dupe-arranger/internal/model"

	"github.com/go-gl/mathgl/mgl64"
)

// Grid fills an X×Y×Z lattice. Cell (x, y, z) sits at
// base + spacing*(x+1, y+1, z+1); z varies fastest.
type Grid struct {
	Size    [3]int
	Spacing mgl64.Vec3
}

func (Grid) Mode() Mode { return ModeGrid }

// Count is the number of cells, which is the only count a grid accepts.
func (g Grid) Count() int {
	return g.Size[0] * g.Size[1] * g.Size[2]
}

func (g Grid) Validate() error {
	for axis, n := range g.Size {
		if n < 1 || n > model.MaxCount {
			return model.Invalidf("arrange: grid size %c=%d outside [1, %d]", "xyz"[axis], n, model.MaxCount)
		}
	}
	if n := g.Count(); n > model.MaxCount {
		return model.Invalidf("arrange: grid of %d cells exceeds %d", n, model.MaxCount)
	}
	return finiteVec("grid spacing", g.Spacing)
}

func (g Grid) Placements(count int, base model.Transform, _ Source) ([]model.Transform, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if count != g.Count() {
		return nil, fmt.Errorf("arrange: grid %dx%dx%d holds %d copies, %d requested: %w",
			g.Size[0], g.Size[1], g.Size[2], g.Count(), count, model.ErrCountMismatch)
	}

	out := make([]model.Transform, 0, count)
	for x := 0; x < g.Size[0]; x++ {
		for y := 0; y < g.Size[1]; y++ {
			for z := 0; z < g.Size[2]; z++ {
				cell := mgl64.Vec3{
					g.Spacing[0] * float64(x+1),
					g.Spacing[1] * float64(y+1),
					g.Spacing[2] * float64(z+1),
				}
				out = append(out, model.Transform{
					Position: base.Position.Add(cell),
					Rotation: base.Rotation,
					Scale:    base.Scale,
				})
			}
		}
	}
	return out, nil
}
