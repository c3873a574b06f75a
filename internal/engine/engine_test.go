package engine

import (
	"context"
	"errors"
	"testing"

	"dupe-arranger/internal/arrange"
	"dupe-arranger/internal/model"
	"dupe-arranger/internal/naming"
	"dupe-arranger/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cube = model.Template{
		Name:      "Cube",
		Base:      model.IdentityTransform(),
		Groupable: true,
		Parent:    "/Level",
	}
	plainNames = naming.Numeric{Counter: naming.Counter{IncrementBy: 1, AddSpace: true, Delimiter: naming.Parentheses}}
)

func TestBuildZipsNamesAndPlacements(t *testing.T) {
	specs, err := Build(3, cube, plainNames, arrange.Linear{PositionOffset: mgl64.Vec3{1, 0, 0}})
	require.NoError(t, err)
	require.Len(t, specs, 3)

	for i, s := range specs {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, "Cube ("+string(rune('0'+i))+")", s.Name)
		assert.Equal(t, float64(i+1), s.Transform.Position[0])
	}
}

func TestBuildIsIdempotentWithSeed(t *testing.T) {
	ac := arrange.Random{
		Position: &arrange.AxisRange{Min: 0, Max: 10},
		Rotation: &arrange.RotationLocks{},
		Scale:    &arrange.AxisRange{Min: 1, Max: 2},
	}
	a, err := Build(50, cube, plainNames, ac, WithSeed(7))
	require.NoError(t, err)
	b, err := Build(50, cube, plainNames, ac, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Build(50, cube, plainNames, ac, WithSeed(8))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestBuildWithoutSeedStillWorks(t *testing.T) {
	specs, err := Build(4, cube, plainNames, arrange.Random{Position: &arrange.AxisRange{Max: 1}})
	require.NoError(t, err)
	assert.Len(t, specs, 4)
}

func TestBuildGridCount(t *testing.T) {
	g := arrange.Grid{Size: [3]int{3, 2, 1}, Spacing: mgl64.Vec3{1, 1, 1}}

	specs, err := Build(0, cube, plainNames, g)
	require.NoError(t, err)
	assert.Len(t, specs, 6)

	specs, err = Build(6, cube, plainNames, g)
	require.NoError(t, err)
	assert.Len(t, specs, 6)

	_, err = Build(5, cube, plainNames, g)
	assert.True(t, errors.Is(err, model.ErrCountMismatch), "got %v", err)
}

func TestBuildRejects(t *testing.T) {
	_, err := Build(0, cube, plainNames, arrange.Linear{})
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))

	_, err = Build(2, cube, plainNames, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))

	_, err = Build(2, cube, nil, arrange.Linear{})
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))

	_, err = Build(2, cube, plainNames, arrange.Grid{Size: [3]int{0, 1, 1}})
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))
}

func TestApplyKeepsTemplateParent(t *testing.T) {
	m := scene.NewMemory()
	specs, err := Apply(context.Background(), m, 2, cube, plainNames, arrange.Linear{}, ParentPolicy{})
	require.NoError(t, err)
	assert.Len(t, specs, 2)

	objs := m.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, "/Level", objs[0].Parent)
	assert.Equal(t, 0, m.Groups())
}

func TestApplyRoot(t *testing.T) {
	m := scene.NewMemory()
	_, err := Apply(context.Background(), m, 1, cube, plainNames, arrange.Linear{}, ParentPolicy{Mode: ParentRoot})
	require.NoError(t, err)
	assert.Equal(t, "", m.Objects()[0].Parent)
}

func TestApplyGroup(t *testing.T) {
	m := scene.NewMemory()
	_, err := Apply(context.Background(), m, 3, cube, plainNames, arrange.Linear{}, ParentPolicy{Mode: ParentGroup})
	require.NoError(t, err)

	assert.True(t, m.HasGroup("/Level/Cube Group"))
	for _, o := range m.Objects() {
		assert.Equal(t, "/Level/Cube Group", o.Parent)
	}

	_, err = Apply(context.Background(), m, 1, cube, plainNames, arrange.Linear{}, ParentPolicy{Mode: ParentGroup, Group: "Row"})
	require.NoError(t, err)
	assert.True(t, m.HasGroup("/Level/Row"))
}

func TestApplyGroupNeedsGroupableTemplate(t *testing.T) {
	tmpl := cube
	tmpl.Groupable = false

	m := scene.NewMemory()
	_, err := Apply(context.Background(), m, 1, tmpl, plainNames, arrange.Linear{}, ParentPolicy{Mode: ParentGroup})
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))
	assert.Empty(t, m.Objects())
}

func TestApplyRejectedConfigCreatesNothing(t *testing.T) {
	m := scene.NewMemory()
	_, err := Apply(context.Background(), m, 3, cube, plainNames, arrange.Grid{Size: [3]int{2, 1, 1}}, ParentPolicy{Mode: ParentGroup})
	assert.True(t, errors.Is(err, model.ErrCountMismatch))
	assert.Equal(t, 0, m.Groups())
	assert.Empty(t, m.Objects())
}

type failingHost struct {
	*scene.Memory
	failAt int
	calls  int
}

func (f *failingHost) Instantiate(ctx context.Context, spec model.DuplicateSpec, parent string) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.New("host refused")
	}
	return f.Memory.Instantiate(ctx, spec, parent)
}

func TestApplyStopsOnHostError(t *testing.T) {
	h := &failingHost{Memory: scene.NewMemory(), failAt: 3}
	done, err := Apply(context.Background(), h, 5, cube, plainNames, arrange.Linear{}, ParentPolicy{})
	assert.ErrorContains(t, err, "host refused")
	assert.Len(t, done, 2)
	assert.Len(t, h.Objects(), 2)
}

func TestApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := scene.NewMemory()
	done, err := Apply(ctx, m, 5, cube, plainNames, arrange.Linear{}, ParentPolicy{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, done)
}

func TestParseParentMode(t *testing.T) {
	for s, want := range map[string]ParentMode{"": ParentKeep, "root": ParentRoot, "Group": ParentGroup} {
		got, err := ParseParentMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseParentMode("sideways")
	assert.True(t, errors.Is(err, model.ErrInvalidConfiguration))
}
