// Package batch runs product analysis over many images with a worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itemlens/itemlens/internal/analyze"
)

// Analyzer produces a product record for a single image file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (analyze.Result, error)
}

// Config holds all configuration for batch processing.
type Config struct {
	Workers         int
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	ContinueOnError bool
	Format          string
	OutputFile      string
	ShowProgress    bool
	Quiet           bool
}

// DefaultConfig returns batch defaults suitable for local runs.
func DefaultConfig() Config {
	return Config{
		Workers:         4,
		ContinueOnError: true,
		Format:          "json",
	}
}

// Item is the outcome for one image. Exactly one of Result and Error is set.
type Item struct {
	File   string          `json:"file"`
	Result *analyze.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Result holds the result of batch processing.
type Result struct {
	Items       []Item
	Duration    time.Duration
	WorkerCount int
}

// Process discovers image files under paths and analyzes them in parallel.
// Item order matches file discovery order regardless of worker scheduling.
func Process(ctx context.Context, analyzer Analyzer, paths []string, config Config, progress ProgressCallback) (*Result, error) {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if progress == nil {
		progress = NoOpProgressCallback{}
	}

	files, err := discoverImageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	progress.OnStart(len(files))
	startTime := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make([]Item, len(files))
	jobs := make(chan int)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
		firstErr  error
	)

	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				file := files[i]
				res, err := analyzer.AnalyzeFile(ctx, file)

				mu.Lock()
				completed++
				done := completed
				if err != nil {
					items[i] = Item{File: file, Error: err.Error()}
					progress.OnError(done, err)
					if !config.ContinueOnError && firstErr == nil {
						firstErr = fmt.Errorf("%s: %w", file, err)
						cancel()
					}
				} else {
					r := res
					items[i] = Item{File: file, Result: &r}
				}
				progress.OnProgress(done, len(files))
				mu.Unlock()
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	progress.OnComplete()

	if firstErr != nil {
		return nil, fmt.Errorf("batch processing failed: %w", firstErr)
	}

	return &Result{
		Items:       items,
		Duration:    time.Since(startTime),
		WorkerCount: config.Workers,
	}, nil
}
