package batch

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	ID      string          `json:"id"`
	Created time.Time       `json:"created"`
	Total   int             `json:"total"`
	Failed  int             `json:"failed"`
	Entries []ManifestEntry `json:"entries"`
}

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Job      string `json:"job"`
	Template string `json:"template,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Copies   int    `json:"copies"`
	Output   string `json:"output,omitempty"`
	Preview  string `json:"preview,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewManifest stamps results with a fresh run id.
func NewManifest(results []Result) Manifest {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Job:      r.Job,
			Template: r.Template,
			Mode:     r.Mode,
			Copies:   r.Copies,
			Output:   r.Output,
			Preview:  r.Preview,
			Error:    r.Error,
		}
	}
	return Manifest{
		ID:      uuid.NewString(),
		Created: time.Now().UTC(),
		Total:   len(results),
		Failed:  Failed(results),
		Entries: entries,
	}
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
