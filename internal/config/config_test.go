package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dupe-arranger/internal/arrange"
	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/model"
	"dupe-arranger/internal/naming"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobFile(t *testing.T) {
	job, err := LoadJob(filepath.Join("testdata", "ring.yaml"))
	require.NoError(t, err)

	req, err := job.Resolve()
	require.NoError(t, err)

	assert.Equal(t, 8, req.Count)
	require.NotNil(t, req.Seed)
	assert.Equal(t, uint64(42), *req.Seed)
	assert.Len(t, req.Options(), 1)

	assert.Equal(t, "Lamp", req.Template.Name)
	assert.Equal(t, mgl64.Vec3{1, 0, 2}, req.Template.Base.Position)
	assert.Equal(t, mgl64.Vec3{}, req.Template.Base.Rotation)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, req.Template.Base.Scale)
	assert.True(t, req.Template.Groupable)
	assert.Equal(t, "/Street", req.Template.Parent)

	assert.Equal(t, engine.ParentPolicy{Mode: engine.ParentGroup, Group: "Lamps"}, req.Parent)

	custom, ok := req.Naming.(naming.Custom)
	require.True(t, ok)
	require.NotNil(t, custom.Prefix)
	assert.Equal(t, "Ring", custom.Prefix.Text)
	assert.True(t, custom.Prefix.AddSpace)
	require.NotNil(t, custom.Suffix)
	assert.Equal(t, naming.Brackets, custom.Suffix.Delimiter)
	assert.Equal(t, 1, custom.Suffix.IncrementBy)

	assert.Equal(t, arrange.Circle{Radius: 5, Orientation: arrange.AxisY, Arc: arrange.Semi, LookAtCenter: true}, req.Arrangement)

	specs, err := engine.Build(req.Count, req.Template, req.Naming, req.Arrangement, req.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "Ring Lamp#[01]", specs[0].Name)
}

func TestParseJobJSON(t *testing.T) {
	src := `{
  "count": 0,
  "template": {"name": "Crate"},
  "naming": {"numeric": {"leading_digits": 2, "increment_by": 3, "delimiter": "underscore"}},
  "arrangement": {"mode": "grid", "grid": {"size": [2, 3, 1], "spacing": [1.5, 0, 2]}}
}`
	job, err := ParseJob(strings.NewReader(src))
	require.NoError(t, err)
	req, err := job.Resolve()
	require.NoError(t, err)

	assert.Nil(t, req.Seed)
	assert.Empty(t, req.Options())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, req.Template.Base.Scale)
	assert.Equal(t, naming.Numeric{Counter: naming.Counter{LeadingDigits: 2, IncrementBy: 3, Delimiter: naming.Underscore}}, req.Naming)
	assert.Equal(t, arrange.Grid{Size: [3]int{2, 3, 1}, Spacing: mgl64.Vec3{1.5, 0, 2}}, req.Arrangement)
	assert.Equal(t, engine.ParentPolicy{}, req.Parent)
}

func TestResolveDefaults(t *testing.T) {
	job, err := ParseJob(strings.NewReader("count: 2\ntemplate: {name: Cube}\narrangement: {mode: spiral}\n"))
	require.NoError(t, err)
	req, err := job.Resolve()
	require.NoError(t, err)

	assert.Equal(t, naming.Numeric{Counter: defaultCounter}, req.Naming)
	assert.Equal(t, arrange.Spiral{Orientation: arrange.AxisY}, req.Arrangement)
}

func TestResolveRandom(t *testing.T) {
	src := `
count: 3
template: {name: Rock}
arrangement:
  mode: random
  random:
    position: {min: 1, max: 4, lock_y: true}
    rotation: {lock_roll: true}
`
	job, err := ParseJob(strings.NewReader(src))
	require.NoError(t, err)
	req, err := job.Resolve()
	require.NoError(t, err)

	assert.Equal(t, arrange.Random{
		Position: &arrange.AxisRange{Min: 1, Max: 4, LockY: true},
		Rotation: &arrange.RotationLocks{LockRoll: true},
	}, req.Arrangement)
}

func TestResolveRejects(t *testing.T) {
	tests := map[string]string{
		"no name":          "template: {}\narrangement: {mode: linear}",
		"short vector":     "template: {name: A, position: [1, 2]}\narrangement: {mode: linear}",
		"parent mode":      "template: {name: A}\nparent: {mode: attic}\narrangement: {mode: linear}",
		"naming mode":      "template: {name: A}\nnaming: {mode: roman}\narrangement: {mode: linear}",
		"custom no block":  "template: {name: A}\nnaming: {mode: custom}\narrangement: {mode: linear}",
		"delimiter":        "template: {name: A}\nnaming: {numeric: {delimiter: stars}}\narrangement: {mode: linear}",
		"arrangement mode": "template: {name: A}\narrangement: {mode: helix}",
		"grid no block":    "template: {name: A}\narrangement: {mode: grid}",
		"grid size":        "template: {name: A}\narrangement: {mode: grid, grid: {size: [1, 2]}}",
		"orientation":      "template: {name: A}\narrangement: {mode: circle, circle: {orientation: w}}",
		"arc":              "template: {name: A}\narrangement: {mode: circle, circle: {arc: eighth}}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			job, err := ParseJob(strings.NewReader(src))
			require.NoError(t, err)
			_, err = job.Resolve()
			assert.True(t, errors.Is(err, model.ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestParseJobRejectsUnknownKeys(t *testing.T) {
	_, err := ParseJob(strings.NewReader("count: 1\ncolour: red\n"))
	assert.Error(t, err)
}

func TestLoadJobMissingFile(t *testing.T) {
	_, err := LoadJob(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "config: read")
}

func TestLoadAndResolveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_dir": "renders", "format": "YAML", "preview_size": 256}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{Workers: 3, PreviewFormat: "png"})

	assert.Equal(t, "renders", cfg.OutputDir)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "png", cfg.PreviewFormat)
	assert.Equal(t, 256, cfg.PreviewSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, "top", cfg.View)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{OutputDir: "a", Format: "json", Addr: ":1"}
	cfg.Resolve(Flags{OutputDir: "b", Format: "msgpack", Addr: ":2"})

	assert.Equal(t, "b", cfg.OutputDir)
	assert.Equal(t, "msgpack", cfg.Format)
	assert.Equal(t, ":2", cfg.Addr)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveCapsPreviewCanvas(t *testing.T) {
	cfg := Config{PreviewSize: 100000, Supersample: 64}
	cfg.Resolve(Flags{})
	assert.Equal(t, MaxPreviewSize, cfg.PreviewSize)
	assert.Equal(t, MaxSupersample, cfg.Supersample)
}

func TestResolveNamingModeIgnoresCase(t *testing.T) {
	src := "count: 1\ntemplate: {name: A}\nnaming: {mode: ' Custom ', custom: {prefix: {text: P}}}\narrangement: {mode: linear}\n"
	job, err := ParseJob(strings.NewReader(src))
	require.NoError(t, err)
	req, err := job.Resolve()
	require.NoError(t, err)
	_, ok := req.Naming.(naming.Custom)
	assert.True(t, ok)
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "config: parse")
}
