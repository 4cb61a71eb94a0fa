package convert

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"tsv2sql/internal/config"
)

// DefaultWorkers bounds the number of files converted concurrently in batch
// mode.
const DefaultWorkers = 4

// FileResult is the outcome of converting a single file in a batch run.
type FileResult struct {
	Input  string
	Result Result
	Err    error
}

// RunDir converts every *.tsv file directly under dir, one output file per
// input (x.tsv -> x.sql), using base for everything but the input and output
// paths. Files are processed concurrently; a failure in one file never
// aborts the others. Results are returned sorted by input path.
//
// RunDir returns an error only when the directory itself cannot be listed or
// contains no TSV files; per-file failures are reported in the results.
func RunDir(ctx context.Context, base config.Job, dir string, workers int) ([]FileResult, error) {
	inputs, err := listTSV(dir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no .tsv files found in %s", dir)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu      sync.Mutex
		results []FileResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			job := base
			job.Input = input
			job.Output = strings.TrimSuffix(input, filepath.Ext(input)) + ".sql"
			if job.Name != "" {
				job.Name = job.Name + ":" + filepath.Base(input)
			}

			res, err := Run(ctx, job)
			if err != nil {
				log.Printf("Error: %s: %v", input, err)
			}

			mu.Lock()
			results = append(results, FileResult{Input: input, Result: res, Err: err})
			mu.Unlock()
			return nil
		})
	}
	// Goroutines never return errors; Wait only observes context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Input < results[j].Input })
	return results, nil
}

// listTSV returns the *.tsv files directly under dir, sorted by name.
// Subdirectories are not walked.
func listTSV(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".tsv") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
