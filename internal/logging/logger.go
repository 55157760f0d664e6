package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// defaultLogger is the package-level default logger instance.
//
//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerMu.Lock()
		defaultLogger = New("info")
		defaultLoggerMu.Unlock()
	})

	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// New creates a stderr logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
//
// When stderr is a terminal the output is human-readable text; otherwise
// timestamped logfmt is written so that service logs stay machine-parseable.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level, isTerminal(os.Stderr))
}

// NewWithWriter creates a logger writing to w. interactive selects the text
// formatter without timestamps over timestamped logfmt.
func NewWithWriter(w io.Writer, level string, interactive bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: !interactive,
		ReportCaller:    false,
		Formatter:       log.TextFormatter,
	}
	if !interactive {
		opts.Formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, opts)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive creates an info-level text logger on stderr, used for
// command output meant to be read by a person.
func NewInteractive() *log.Logger {
	return NewWithWriter(os.Stderr, "info", true)
}

// ParseLevel maps a level name to a log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ValidLevel reports whether level is a name ParseLevel understands.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	getDefaultLogger()

	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	getDefaultLogger().SetLevel(ParseLevel(level))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
