package main

import (
	"fmt"

	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/naming"

	"github.com/spf13/cobra"
)

func newNamesCmd(rf *rootFlags) *cobra.Command {
	var jobFile string

	cmd := &cobra.Command{
		Use:   "names",
		Short: "Print the names a job would give its copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadJob(jobFile)
			if err != nil {
				return err
			}
			count, err := engine.ResolveCount(req.Count, req.Arrangement)
			if err != nil {
				return err
			}
			names, err := naming.Generate(count, req.Template, req.Naming)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job file (YAML or JSON)")
	return cmd
}
