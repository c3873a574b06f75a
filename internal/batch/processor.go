// Package batch runs many job files through the engine on a worker pool.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dupe-arranger/internal/config"
	"dupe-arranger/internal/engine"
	"dupe-arranger/internal/export"
	"dupe-arranger/internal/preview"
	"dupe-arranger/internal/scene"
)

// Config holds the settings shared by every job in a run.
type Config struct {
	OutputDir string
	Format    export.Format
	Preview   *PreviewConfig // nil skips previews
	Workers   int
	Progress  time.Duration // progress log interval, default 2s
	Logger    *slog.Logger
}

// PreviewConfig enables a preview image per job.
type PreviewConfig struct {
	Format  preview.ImageFormat
	Options preview.Options
}

// Result holds the outcome of processing one job file.
type Result struct {
	Job      string
	Template string
	Mode     string
	Copies   int
	Output   string // export path relative to OutputDir
	Preview  string // preview path relative to OutputDir, "" when disabled
	Success  bool
	Error    string
}

// Run processes all job files using a worker pool. Results are in the order
// of jobs; a failing job never stops the others.
func Run(ctx context.Context, cfg Config, jobs []string) []Result {
	total := len(jobs)
	results := make([]Result, total)
	if total == 0 {
		return results
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Progress <= 0 {
		cfg.Progress = 2 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	stems := outputStems(jobs)
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Progress)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch progress", "processed", p, "total", total, "jobs_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx], stems[idx])
				if !results[idx].Success {
					log.Warn("job failed", "job", jobs[idx], "error", results[idx].Error)
				}
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	log.Info("batch finished", "total", total, "failed", Failed(results), "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// Failed counts unsuccessful results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Success {
			n++
		}
	}
	return n
}

func processJob(ctx context.Context, cfg Config, path, stem string) Result {
	res := Result{Job: path}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	job, err := config.LoadJob(path)
	if err != nil {
		return fail(err)
	}
	req, err := job.Resolve()
	if err != nil {
		return fail(err)
	}
	res.Template = req.Template.Name
	res.Mode = req.Arrangement.Mode().String()

	host := scene.NewMemory()
	specs, err := engine.Apply(ctx, host, req.Count, req.Template, req.Naming, req.Arrangement, req.Parent, req.Options()...)
	if err != nil {
		return fail(err)
	}
	res.Copies = len(specs)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(err)
	}

	res.Output = stem + cfg.Format.Ext()
	doc := export.NewDocument(req.Template.Name, res.Mode, export.FromObjects(host.Objects()))
	if err := writeFile(filepath.Join(cfg.OutputDir, res.Output), func(f *os.File) error {
		return export.Encode(f, cfg.Format, doc)
	}); err != nil {
		return fail(err)
	}

	if cfg.Preview != nil {
		res.Preview = stem + cfg.Preview.Format.Ext()
		img := preview.Render(specs, req.Template, cfg.Preview.Options)
		if err := writeFile(filepath.Join(cfg.OutputDir, res.Preview), func(f *os.File) error {
			return preview.Encode(f, img, cfg.Preview.Format)
		}); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputStems names each job's outputs after its file, adding -2, -3, ...
// when two jobs share a base name.
func outputStems(jobs []string) []string {
	seen := make(map[string]int, len(jobs))
	stems := make([]string, len(jobs))
	for i, j := range jobs {
		base := filepath.Base(j)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s-%d", stem, n)
		}
		stems[i] = stem
	}
	return stems
}
