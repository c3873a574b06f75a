package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dupe-arranger/internal/batch"
	"dupe-arranger/internal/export"
	"dupe-arranger/internal/preview"

	"github.com/spf13/cobra"
)

func newBatchCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch job...",
		Short: "Run many job files on a worker pool and write a manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			bc := batch.Config{
				OutputDir: cfg.OutputDir,
				Format:    format,
				Workers:   cfg.Workers,
				Logger:    slog.Default(),
			}
			if cfg.PreviewFormat != "" {
				pf, err := preview.ParseImageFormat(cfg.PreviewFormat)
				if err != nil {
					return err
				}
				view, err := preview.ParseView(cfg.View)
				if err != nil {
					return err
				}
				bc.Preview = &batch.PreviewConfig{
					Format: pf,
					Options: preview.Options{
						Size:        cfg.PreviewSize,
						Supersample: cfg.Supersample,
						View:        view,
						Labels:      cfg.Labels,
					},
				}
			}

			slog.Info("batch starting", "jobs", len(args), "workers", bc.Workers, "output", bc.OutputDir)
			results := batch.Run(cmd.Context(), bc, args)

			for _, r := range results {
				if !r.Success {
					slog.Error("job failed", "job", r.Job, "error", r.Error)
				}
			}

			if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
				return err
			}
			manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
			m := batch.NewManifest(results)
			if err := batch.WriteManifest(manifestPath, m); err != nil {
				slog.Warn("manifest write failed", "error", err)
			} else {
				slog.Info("manifest written", "path", manifestPath, "id", m.ID)
			}

			if m.Failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", m.Failed, m.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rf.flags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	cmd.Flags().StringVar(&rf.flags.PreviewFormat, "preview", "", "Also render previews: webp, png or tga")
	return cmd
}
