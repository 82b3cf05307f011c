package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Func processes one file.
type Func[T any] func(ctx context.Context, path string) (T, error)

// Outcome is the result of processing one file.
type Outcome[T any] struct {
	// Path is the absolute file path that was processed.
	Path string

	// Value is what the Func returned. It is the zero value when Err is set.
	Value T

	// Err is set if the file could not be processed.
	Err error
}

// Result is the overall runner result.
type Result[T any] struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []Outcome[T]

	// Discovered is the number of files found during discovery.
	Discovered int

	// Failed is the number of files whose Func returned an error.
	Failed int
}

// HasFailures reports whether any file failed.
func (r *Result[T]) HasFailures() bool {
	return r != nil && r.Failed > 0
}

// Run discovers files under opts.Paths and applies fn to them concurrently.
// Outcomes come back in discovery order regardless of completion order.
func Run[T any](ctx context.Context, opts Options, fn Func[T]) (*Result[T], error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{
		Files:      make([]Outcome[T], 0, len(files)),
		Discovered: len(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan Outcome[T])

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, fn, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]Outcome[T], len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		outcome, ok := outcomes[path]
		if !ok {
			continue
		}
		if outcome.Err != nil {
			result.Failed++
		}
		result.Files = append(result.Files, outcome)
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func worker[T any](ctx context.Context, fn Func[T], workCh <-chan string, outCh chan<- Outcome[T]) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		value, err := fn(ctx, path)
		outcome := Outcome[T]{Path: path, Value: value, Err: err}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
