package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/internal/metrics"
	"github.com/yaklabco/exarch/pkg/fsutil"
	"github.com/yaklabco/exarch/pkg/gemtext"
)

// ErrNoOutput is returned by Run when Options.Output is empty.
var ErrNoOutput = errors.New("output directory required")

// Runner converts Markdown trees concurrently.
type Runner struct {
	// Converter turns each document into Gemtext.
	Converter *gemtext.Converter

	// Recorder observes every conversion. Nil means no metrics.
	Recorder metrics.Recorder
}

// New creates a Runner. A nil converter selects the default goldmark-backed
// converter.
func New(converter *gemtext.Converter, recorder metrics.Recorder) *Runner {
	if converter == nil {
		converter = gemtext.NewConverter(nil)
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Runner{Converter: converter, Recorder: recorder}
}

// Run discovers files under opts.Root and converts them concurrently into
// opts.Output. Per-file failures are reported in the Result and do not stop
// the build; only discovery errors and cancellation return an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Output == "" {
		return nil, ErrNoOutput
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesFound = len(files)

	if len(files) == 0 {
		return result, nil
	}

	root, err := absDir(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	output, err := absDir(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("building",
		logging.FieldRoot, root,
		logging.FieldOutput, output,
		logging.FieldFilesFound, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, root, output, workCh, outCh)
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

	// Workers finish out of order; collect by path and report in discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Source] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("build cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, root, output string, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.convertFile(ctx, root, output, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// convertFile reads one Markdown source and writes its Gemtext target.
func (r *Runner) convertFile(ctx context.Context, root, output, source string) (outcome FileOutcome) {
	start := time.Now()
	outcome.Source = source
	defer func() {
		outcome.Duration = time.Since(start)
		r.Recorder.ObserveConversion(outcome.Duration, outcome.Error == nil)
	}()

	target, err := TargetPath(root, output, source)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Target = target

	content, err := fsutil.ReadFile(ctx, source)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	doc, err := r.Converter.ConvertDocument(string(content))
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", source, err)
		return outcome
	}
	outcome.Title = doc.Metadata.Title
	if doc.MetadataErr != nil {
		logging.FromContext(ctx).Warn("ignoring front matter",
			logging.FieldPath, source,
			logging.FieldError, doc.MetadataErr,
		)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, target, doc.Gemtext, fsutil.DefaultFileMode)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Written = written

	return outcome
}
