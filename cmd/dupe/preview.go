package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dupe-arranger/internal/config"
	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/preview"

	"github.com/spf13/cobra"
)

func newPreviewCmd(rf *rootFlags) *cobra.Command {
	var (
		jobFile, outFile string
		view, sprite     string
		size             int
		labels           bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a job's arrangement to a WebP, PNG or TGA image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return fmt.Errorf("an output image is required (-o)")
			}
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			format, err := preview.ParseImageFormat(strings.TrimPrefix(filepath.Ext(outFile), "."))
			if err != nil {
				return err
			}
			if view == "" {
				view = cfg.View
			}
			v, err := preview.ParseView(view)
			if err != nil {
				return err
			}

			opts := preview.Options{
				Size:        cfg.PreviewSize,
				Supersample: cfg.Supersample,
				View:        v,
				Labels:      labels || cfg.Labels,
			}
			if size > config.MaxPreviewSize {
				return fmt.Errorf("--size %d exceeds %d", size, config.MaxPreviewSize)
			}
			if size > 0 {
				opts.Size = size
			}
			if sprite != "" {
				img, err := preview.LoadSprite(sprite)
				if err != nil {
					return err
				}
				opts.Sprite = img
			}

			req, err := loadJob(jobFile)
			if err != nil {
				return err
			}
			specs, err := engine.Build(req.Count, req.Template, req.Naming, req.Arrangement, req.Options()...)
			if err != nil {
				return err
			}

			img := preview.Render(specs, req.Template, opts)
			f, err := os.Create(outFile)
			if err != nil {
				return err
			}
			if err := preview.Encode(f, img, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			slog.Info("preview written", "path", outFile, "copies", len(specs), "view", v)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&jobFile, "job", "j", "", "Job file (YAML or JSON)")
	f.StringVarP(&outFile, "out", "o", "", "Output image; the extension picks webp, png or tga")
	f.StringVar(&view, "view", "", "Projection: top, front or side (default from config)")
	f.IntVar(&size, "size", 0, "Image edge in pixels (default from config)")
	f.BoolVar(&labels, "labels", false, "Draw copy indices")
	f.StringVar(&sprite, "sprite", "", "Marker image (png, jpeg, tga or webp)")
	return cmd
}
