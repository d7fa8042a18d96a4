// Package engine exports keyframe scripts for every preset of a batch file.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/beat2frame/internal/config"
	"github.com/ivlev/beat2frame/internal/export"
	"github.com/ivlev/beat2frame/internal/frames"
	"github.com/ivlev/beat2frame/internal/script"
	"github.com/ivlev/beat2frame/internal/system"
)

// Result describes one exported script.
type Result struct {
	Preset string
	Path   string
	Frames int
}

type BatchProject struct {
	Config *config.Config
	Batch  *config.BatchFile
	RunID  string
}

func NewBatchProject(cfg *config.Config, batch *config.BatchFile) *BatchProject {
	return &BatchProject{
		Config: cfg,
		Batch:  batch,
		RunID:  uuid.NewString(),
	}
}

// Run renders every preset concurrently, at most Config.Workers at a time.
// Results keep the preset order. The first failure cancels the rest.
func (p *BatchProject) Run(ctx context.Context) ([]Result, error) {
	startTime := time.Now()

	presets := p.Batch.Presets
	if len(presets) == 0 {
		return nil, errors.New("batch has no presets")
	}
	if err := checkUniqueOutputs(presets); err != nil {
		return nil, err
	}

	numWorkers := p.Config.Workers
	if numWorkers <= 0 || numWorkers > len(presets) {
		numWorkers = len(presets)
	}

	fmt.Println("--- [BATCH EXPORT] ---")
	fmt.Printf("[*] Run: %s | Presets: %d | Workers: %d\n", p.RunID, len(presets), numWorkers)
	fmt.Println("----------------------")

	results := make([]Result, len(presets))
	var done, totalRows atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	for i, preset := range presets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rows := frames.Generate(preset.Params, preset.RowCount())
			text := script.Render(script.Frames(rows), preset.FPS)

			path, err := export.WriteText(p.Config.OutputDir, preset.OutputName(), export.DefaultExtension, text)
			if err != nil {
				return errors.Wrapf(err, "preset %q", preset.OutputName())
			}

			results[i] = Result{Preset: preset.OutputName(), Path: path, Frames: len(rows)}
			totalRows.Add(int64(len(rows)))
			fmt.Printf("[>] Ready: %d/%d %s\n", done.Add(1), len(presets), path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Config.ShowStats {
		report := Report{
			RunID:   p.RunID,
			Build:   p.Config.BuildVersion,
			Presets: len(presets),
			Rows:    int(totalRows.Load()),
			Total:   time.Since(startTime),
			Host:    system.TakeSnapshot(),
		}
		fmt.Print(report.String())
		if err := report.AppendLog(filepath.Join(p.Config.OutputDir, "benchmark.log")); err != nil {
			fmt.Printf("[!] Failed to write benchmark.log: %v\n", err)
		}
	}

	return results, nil
}

func checkUniqueOutputs(presets []config.Preset) error {
	seen := make(map[string]bool, len(presets))
	for _, preset := range presets {
		name := export.EnsureExtension(preset.OutputName(), export.DefaultExtension)
		if seen[name] {
			return errors.Errorf("two presets write %s", name)
		}
		seen[name] = true
	}
	return nil
}

// Report summarizes a batch run.
type Report struct {
	RunID   string
	Build   string
	Presets int
	Rows    int
	Total   time.Duration
	Host    system.Snapshot
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Run: %s\n"+
			"Build: %s\n"+
			"Total Time: %.3fs\n"+
			"Presets: %d\n"+
			"Rows: %d\n"+
			"Host: %s\n"+
			"----------------------------\n",
		r.RunID, r.Build, r.Total.Seconds(), r.Presets, r.Rows, r.Host,
	)
}

// AppendLog appends a one-line summary to path.
func (r Report) AppendLog(path string) error {
	logEntry := fmt.Sprintf("[%s] Run: %s | Build: %s | Presets: %d | Rows: %d | Total: %.3fs | Mem: %.1f%%\n",
		time.Now().Format("2006-01-02 15:04:05"),
		r.RunID,
		r.Build,
		r.Presets,
		r.Rows,
		r.Total.Seconds(),
		r.Host.MemUsedPercent,
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(logEntry)
	return err
}
