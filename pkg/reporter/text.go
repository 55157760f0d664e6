package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/exarch/internal/ui/pretty"
	"github.com/yaklabco/exarch/pkg/runner"
)

// TextReporter writes a one-line summary followed by any failures.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}
	if _, err := fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats, r.opts.Elapsed)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	for _, failed := range result.Failed() {
		_, err := fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(failed.Source),
			r.styles.Error.Render(failed.Error.Error()))
		if err != nil {
			return fmt.Errorf("write failure: %w", err)
		}
	}

	return nil
}
