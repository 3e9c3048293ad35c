package asd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of loading one file in a batch. File is non-nil
// whenever the parse succeeded, including parses that reported a
// *ValidationError (carried in Err alongside the partial result).
type BatchResult struct {
	Path string
	File *ASDFile
	Err  error
}

// batchOptions configures LoadDir.
type batchOptions struct {
	concurrency int
	extensions  []string
}

// BatchOption configures a LoadDir call.
type BatchOption func(*batchOptions)

// WithConcurrency bounds the number of files parsed in parallel.
// The default is the number of CPUs.
func WithConcurrency(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithExtensions sets the file extensions (case-insensitive) LoadDir picks
// up. The default is ".asd".
func WithExtensions(exts ...string) BatchOption {
	return func(o *batchOptions) {
		o.extensions = exts
	}
}

// LoadDir parses every matching file in dir in parallel and returns one
// result per file, in directory order. Parsing has no shared mutable state,
// so the only coordination is the concurrency bound. A corrupt file is
// reported in its own result and never halts the rest of the batch; LoadDir
// itself fails only when the directory cannot be listed or ctx is canceled.
func LoadDir(ctx context.Context, dir string, opts ...BatchOption) ([]BatchResult, error) {
	o := batchOptions{
		concurrency: runtime.NumCPU(),
		extensions:  []string{".asd"},
	}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range o.extensions {
			if ext == strings.ToLower(want) {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}

	results := make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := Open(path)
			results[i] = BatchResult{Path: path, File: f, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
