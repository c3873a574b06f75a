package naming

import (
	"fmt"

	"dupe-arranger/internal/model"
)

// Generate returns count names for tmpl. Every name depends only on its index.
func Generate(count int, tmpl model.Template, cfg Config) ([]string, error) {
	if err := model.CheckCount(count); err != nil {
		return nil, fmt.Errorf("naming: %w", err)
	}
	if cfg == nil {
		return nil, model.Invalidf("naming: no naming config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, count)
	for i := range names {
		names[i] = cfg.name(i, tmpl.Name)
	}
	return names, nil
}

// Name returns the name of copy i. cfg must already be valid.
func Name(i int, tmpl model.Template, cfg Config) string {
	return cfg.name(i, tmpl.Name)
}
