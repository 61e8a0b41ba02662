// Package batch casts a whole directory of images in one run, fanning
// the per-image work out over a bounded worker pool.
package batch

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
	"github.com/AnyUserName/hexcast-cli/internal/history"
	"github.com/AnyUserName/hexcast-cli/internal/imageio"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir   string
	Method     divine.Method
	Workers    int
	Save       bool   // persist each reading to HistoryDir
	HistoryDir string
	Verbose    bool
}

// Reading is one per-image outcome.
type Reading struct {
	Key    string
	Result divine.Result
	Err    error
}

// Summary aggregates a completed run.
type Summary struct {
	Readings []Reading
	Failed   int
	// HexagramCounts tallies primary hexagram numbers across the run.
	HexagramCounts map[int]int
}

// Runner orchestrates directory casting.
type Runner struct {
	cfg     Config
	catalog *hexagram.Catalog
}

// New creates a configured runner.
func New(cfg Config, catalog *hexagram.Catalog) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{cfg: cfg, catalog: catalog}
}

// Run scans the input directory and casts every image in parallel.
// Per-image failures are collected, not fatal; the run only errors when
// nothing could be cast at all.
func (r *Runner) Run() (*Summary, error) {
	sources, err := ScanImages(r.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", r.cfg.InputDir)
	}
	if r.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[hexcast] found %d images\n", len(sources))
	}

	readings := make([]Reading, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if r.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[hexcast] casting: %s\n", s.Key)
			}
			readings[idx] = r.castOne(s)
		}(i, src)
	}
	wg.Wait()

	sum := &Summary{Readings: readings, HexagramCounts: make(map[int]int)}
	for _, rd := range readings {
		if rd.Err != nil {
			sum.Failed++
			fmt.Fprintf(os.Stderr, "[hexcast] error: %v\n", rd.Err)
			continue
		}
		sum.HexagramCounts[rd.Result.Primary.Number]++
	}
	if sum.Failed == len(sources) {
		return nil, fmt.Errorf("all %d images failed to cast", sum.Failed)
	}
	if sum.Failed > 0 {
		fmt.Fprintf(os.Stderr, "[hexcast] warning: %d of %d images had errors\n",
			sum.Failed, len(sources))
	}
	return sum, nil
}

func (r *Runner) castOne(src Source) Reading {
	rd := Reading{Key: src.Key}

	buf, err := imageio.Load(src.AbsPath)
	if err != nil {
		rd.Err = fmt.Errorf("%s: %w", src.RelPath, err)
		return rd
	}
	res, err := divine.Cast(buf.Pix, buf.Width, buf.Height, r.cfg.Method, r.catalog)
	if err != nil {
		rd.Err = fmt.Errorf("%s: %w", src.RelPath, err)
		return rd
	}
	rd.Result = res

	if r.cfg.Save {
		store := history.Store{Dir: r.cfg.HistoryDir}
		if _, err := store.Save(history.NewRecord(res)); err != nil {
			rd.Err = fmt.Errorf("%s: save: %w", src.RelPath, err)
		}
	}
	return rd
}
