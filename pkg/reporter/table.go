package reporter

import (
	"bufio"
	"context"
	"fmt"

	"golang.org/x/term"

	"github.com/yaklabco/exarch/internal/ui/pretty"
	"github.com/yaklabco/exarch/pkg/runner"
)

// TableReporter lists every file with its outcome, then a summary block.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	formatter := pretty.NewTableFormatter(r.styles, terminalWidth(r.opts))

	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}

	out := formatter.FormatTable(result, r.opts.Root, r.opts.Output) + r.styles.FormatSummary(stats)
	if _, err := fmt.Fprint(r.bw, out); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// terminalWidth returns the width of the output terminal, or 0 if the writer
// is not a terminal.
func terminalWidth(opts Options) int {
	fd, ok := opts.Writer.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(fd.Fd()))
	if err != nil {
		return 0
	}
	return width
}
