// Command dupe builds, names, previews and serves duplicate arrangements.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"dupe-arranger/internal/config"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type rootFlags struct {
	configFile string
	verbose    bool
	flags      config.Flags
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}

	root := &cobra.Command{
		Use:           "dupe",
		Short:         "Generate named, arranged copies of a template object",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if rf.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configFile, "config", "", "Path to config.json file")
	pf.BoolVarP(&rf.verbose, "verbose", "v", false, "Debug logging")
	pf.StringVar(&rf.flags.OutputDir, "output", "", "Output directory (default: out)")
	pf.StringVarP(&rf.flags.Format, "format", "f", "", "Export format: json, yaml or msgpack (default: json)")

	root.AddCommand(
		newBuildCmd(rf),
		newNamesCmd(rf),
		newPreviewCmd(rf),
		newBatchCmd(rf),
		newServeCmd(rf),
	)
	return root
}

// load reads the config file, if any, and applies flag overrides.
func (rf *rootFlags) load() (config.Config, error) {
	var cfg config.Config
	if rf.configFile != "" {
		var err error
		cfg, err = config.Load(rf.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(rf.flags)
	slog.Debug("config resolved", "output_dir", cfg.OutputDir, "format", cfg.Format, "workers", cfg.Workers)
	return cfg, nil
}

// loadJob reads a job file and converts it to engine inputs.
func loadJob(path string) (config.Request, error) {
	if path == "" {
		return config.Request{}, fmt.Errorf("a job file is required (-j)")
	}
	job, err := config.LoadJob(path)
	if err != nil {
		return config.Request{}, err
	}
	return job.Resolve()
}
