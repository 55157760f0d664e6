package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/exarch/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // SOURCE, TARGET, STATUS
	minPathWidth     = 20
	minStatusWidth   = 9
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// Build statuses shown in the STATUS column.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
)

// TableRow represents a single row in the build table.
type TableRow struct {
	Source string
	Target string
	Status string
	Error  string
}

// TableFormatter formats build outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// OutcomeToTableRow converts a build outcome to a row, showing paths relative
// to root and output where possible.
func OutcomeToTableRow(outcome runner.FileOutcome, root, output string) TableRow {
	row := TableRow{
		Source: relativeTo(root, outcome.Source),
		Target: relativeTo(output, outcome.Target),
	}
	switch {
	case outcome.Error != nil:
		row.Status = StatusFailed
		row.Error = outcome.Error.Error()
	case outcome.Written:
		row.Status = StatusWritten
	default:
		row.Status = StatusUnchanged
	}
	return row
}

// FormatTable formats build results as a styled table followed by the error
// of every failed file.
func (t *TableFormatter) FormatTable(result *runner.Result, root, output string) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, OutcomeToTableRow(outcome, root, output))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		if row.Error == "" {
			continue
		}
		builder.WriteString(t.styles.FilePath.Render(row.Source))
		builder.WriteString(": ")
		builder.WriteString(t.styles.Error.Render(row.Error))
		builder.WriteString("\n")
	}

	return builder.String()
}

type columnWidths struct {
	source int
	target int
	status int
}

// calculateColumnWidths determines column widths based on content, shrinking
// the path columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		source: minPathWidth,
		target: minPathWidth,
		status: minStatusWidth,
	}

	for _, row := range rows {
		widths.source = max(widths.source, len(row.Source))
		widths.target = max(widths.target, len(row.Target))
	}

	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.source = max(minPathWidth, widths.source-excess/2)
		widths.target = max(minPathWidth, widths.target-(excess-excess/2))
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.source + widths.target + widths.status + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s ",
		widths.source, "SOURCE",
		widths.target, "TARGET",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  ",
		widths.source, truncatePath(row.Source, widths.source),
		widths.target, truncatePath(row.Target, widths.target),
	)
	return content + t.statusStyle(row.Status).Render(row.Status)
}

func (t *TableFormatter) statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusFailed:
		return t.styles.Error
	case StatusWritten:
		return t.styles.Written
	default:
		return t.styles.Unchanged
	}
}

// truncatePath keeps the end of a path, which carries the file name.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-(maxLen-len(ellipsis)):]
}

func relativeTo(base, path string) string {
	if base == "" || path == "" {
		return path
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
