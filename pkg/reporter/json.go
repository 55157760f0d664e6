package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/exarch/pkg/runner"
)

// jsonVersion identifies the layout of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Title      string `json:"title,omitempty"`
	Written    bool   `json:"written"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesFound     int   `json:"filesFound"`
	FilesWritten   int   `json:"filesWritten"`
	FilesUnchanged int   `json:"filesUnchanged"`
	FilesFailed    int   `json:"filesFailed"`
	ElapsedMS      int64 `json:"elapsedMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ElapsedMS: r.opts.Elapsed.Milliseconds()},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Source:     file.Source,
			Target:     file.Target,
			Title:      file.Title,
			Written:    file.Written,
			DurationMS: file.Duration.Milliseconds(),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	output.Summary.FilesFound = result.Stats.FilesFound
	output.Summary.FilesWritten = result.Stats.FilesWritten
	output.Summary.FilesUnchanged = result.Stats.FilesUnchanged
	output.Summary.FilesFailed = result.Stats.FilesFailed

	return output
}
