package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/exarch/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func pluralFiles(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "Built 12 files (10 written, 2 unchanged) in 40ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, elapsed time.Duration) string {
	if stats.FilesFound == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	converted := stats.FilesWritten + stats.FilesUnchanged
	headline := fmt.Sprintf("Built %d %s", converted, pluralFiles(converted))
	if stats.FilesFailed > 0 {
		headline = s.Failure.Render(headline)
	} else {
		headline = s.Success.Render(headline)
	}

	parts := []string{
		s.Written.Render(fmt.Sprintf("%d written", stats.FilesWritten)),
		s.Unchanged.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)),
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	line := headline + " (" + strings.Join(parts, ", ") + ")"
	if elapsed > 0 {
		line += s.Dim.Render(" in " + elapsed.Round(time.Millisecond).String())
	}
	return line + "\n"
}

// FormatSummary formats build statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesFound)) + "\n")
	builder.WriteString("  Files written:   " +
		s.Written.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	builder.WriteString("  Files unchanged: " +
		s.Unchanged.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")

	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:    " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Build failed"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
