package reporter

import (
	"io"
	"os"
	"time"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Compact uses minified JSON output.
	Compact bool

	// Root is the source tree; paths are shown relative to it.
	Root string

	// Output is the target tree; paths are shown relative to it.
	Output string

	// Elapsed is the wall time of the build, shown by the text format.
	Elapsed time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}
