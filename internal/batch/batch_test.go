package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dupe-arranger/internal/export"
	"dupe-arranger/internal/preview"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowJob = `count: 3
template:
  name: Crate
arrangement:
  mode: linear
  linear:
    position_offset: [2, 0, 0]
`

const gridJob = `template:
  name: Tile
arrangement:
  mode: grid
  grid:
    size: [2, 1, 2]
    spacing: [1, 1, 1]
`

const badJob = `count: 0
template:
  name: Crate
arrangement:
  mode: linear
`

func writeJobs(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		paths = append(paths, p)
	}
	return dir, paths
}

func TestRunWritesExportsAndPreviews(t *testing.T) {
	_, jobs := writeJobs(t, map[string]string{"row.yaml": rowJob, "grid.yaml": gridJob})
	out := t.TempDir()

	results := Run(context.Background(), Config{
		OutputDir: out,
		Format:    export.FormatYAML,
		Preview:   &PreviewConfig{Format: preview.FormatPNG, Options: preview.Options{Size: 32, Supersample: 1}},
		Workers:   2,
	}, jobs)

	require.Len(t, results, 2)
	assert.Zero(t, Failed(results))
	for i, r := range results {
		assert.Equal(t, jobs[i], r.Job)
		assert.FileExists(t, filepath.Join(out, r.Output))
		assert.FileExists(t, filepath.Join(out, r.Preview))

		f, err := os.Open(filepath.Join(out, r.Output))
		require.NoError(t, err)
		doc, err := export.Decode(f, export.FormatYAML)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, r.Copies, doc.Count)
		assert.Equal(t, r.Mode, doc.Mode)
	}

	byMode := map[string]Result{}
	for _, r := range results {
		byMode[r.Mode] = r
	}
	assert.Equal(t, 3, byMode["linear"].Copies)
	assert.Equal(t, 4, byMode["grid"].Copies)
}

func TestRunKeepsGoingAfterFailure(t *testing.T) {
	_, jobs := writeJobs(t, map[string]string{"bad.yaml": badJob, "row.yaml": rowJob})
	jobs = append(jobs, filepath.Join(t.TempDir(), "missing.yaml"))

	results := Run(context.Background(), Config{OutputDir: t.TempDir(), Format: export.FormatJSON}, jobs)
	require.Len(t, results, 3)
	assert.Equal(t, 2, Failed(results))

	for _, r := range results {
		if filepath.Base(r.Job) == "row.yaml" {
			assert.True(t, r.Success)
			assert.Empty(t, r.Preview)
		} else {
			assert.False(t, r.Success)
			assert.NotEmpty(t, r.Error)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	_, jobs := writeJobs(t, map[string]string{"row.yaml": rowJob})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, Config{OutputDir: t.TempDir(), Format: export.FormatJSON}, jobs)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "canceled")
}

func TestRunEmpty(t *testing.T) {
	assert.Empty(t, Run(context.Background(), Config{}, nil))
}

func TestOutputStemsDisambiguate(t *testing.T) {
	stems := outputStems([]string{"a/ring.yaml", "b/ring.yml", "c/row.json"})
	assert.Equal(t, []string{"ring", "ring-2", "row"}, stems)
}

func TestManifest(t *testing.T) {
	results := []Result{
		{Job: "a.yaml", Template: "Crate", Mode: "linear", Copies: 3, Output: "a.json", Success: true},
		{Job: "b.yaml", Error: "boom"},
	}
	m := NewManifest(results)
	_, err := uuid.Parse(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.Failed)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Manifest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m.ID, back.ID)
	assert.Equal(t, "boom", back.Entries[1].Error)
	assert.Equal(t, "a.json", back.Entries[0].Output)
	assert.NotContains(t, string(data), `"preview"`)
}
