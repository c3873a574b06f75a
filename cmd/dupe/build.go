package main

import (
	"io"
	"log/slog"
	"os"

	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/export"
	"dupe-arranger/internal/scene"

	"github.com/spf13/cobra"
)

func newBuildCmd(rf *rootFlags) *cobra.Command {
	var jobFile, outFile string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Place every copy of a job and export the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			req, err := loadJob(jobFile)
			if err != nil {
				return err
			}

			host := scene.NewMemory()
			specs, err := engine.Apply(cmd.Context(), host, req.Count, req.Template, req.Naming, req.Arrangement, req.Parent, req.Options()...)
			if err != nil {
				return err
			}
			slog.Info("built copies", "template", req.Template.Name, "mode", req.Arrangement.Mode(), "copies", len(specs), "groups", host.Groups())

			doc := export.NewDocument(req.Template.Name, req.Arrangement.Mode().String(), export.FromObjects(host.Objects()))

			var w io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export.Encode(w, format, doc)
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job file (YAML or JSON)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default: stdout)")
	return cmd
}
