package pretty_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exarch/internal/ui/pretty"
	"github.com/yaklabco/exarch/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		stats   runner.Stats
		elapsed time.Duration
		want    string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No Markdown files found\n",
		},
		{
			name:    "all written",
			stats:   runner.Stats{FilesFound: 3, FilesWritten: 3},
			elapsed: 41500 * time.Microsecond,
			want:    "Built 3 files (3 written, 0 unchanged) in 42ms\n",
		},
		{
			name:  "single file unchanged",
			stats: runner.Stats{FilesFound: 1, FilesUnchanged: 1},
			want:  "Built 1 file (0 written, 1 unchanged)\n",
		},
		{
			name:  "with failures",
			stats: runner.Stats{FilesFound: 4, FilesWritten: 2, FilesUnchanged: 1, FilesFailed: 1},
			want:  "Built 3 files (2 written, 1 unchanged, 1 failed)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats, tt.elapsed))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{FilesFound: 5, FilesWritten: 2, FilesUnchanged: 3})
	assert.Contains(t, ok, "Summary")
	assert.Contains(t, ok, "Files found:     5")
	assert.Contains(t, ok, "Files written:   2")
	assert.Contains(t, ok, "Files unchanged: 3")
	assert.NotContains(t, ok, "Files failed:")
	assert.Contains(t, ok, "Build succeeded")

	failed := styles.FormatSummary(runner.Stats{FilesFound: 2, FilesWritten: 1, FilesFailed: 1})
	assert.Contains(t, failed, "Files failed:    1")
	assert.Contains(t, failed, "Build failed")
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/site")
	output := filepath.FromSlash("/public")
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Source:  filepath.FromSlash("/site/docs/guide.md"),
				Target:  filepath.FromSlash("/public/docs/guide.gmi"),
				Written: true,
			},
			{
				Source: filepath.FromSlash("/site/index.md"),
				Target: filepath.FromSlash("/public/index.gmi"),
			},
			{
				Source: filepath.FromSlash("/site/broken.md"),
				Target: filepath.FromSlash("/public/broken.gmi"),
				Error:  errors.New("permission denied"),
			},
		},
	}

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0).FormatTable(result, root, output)
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "SOURCE")
	assert.Contains(t, lines[0], "TARGET")
	assert.Contains(t, lines[0], "STATUS")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])

	assert.Contains(t, lines[2], "docs/guide.md")
	assert.Contains(t, lines[2], "docs/guide.gmi")
	assert.True(t, strings.HasSuffix(lines[2], pretty.StatusWritten))
	assert.True(t, strings.HasSuffix(lines[3], pretty.StatusUnchanged))
	assert.True(t, strings.HasSuffix(lines[4], pretty.StatusFailed))

	assert.Equal(t, "broken.md: permission denied", lines[6])
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)
	assert.Empty(t, formatter.FormatTable(nil, "", ""))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}, "", ""))
}

func TestOutcomeToTableRow_OutsideBase(t *testing.T) {
	t.Parallel()

	row := pretty.OutcomeToTableRow(runner.FileOutcome{
		Source: filepath.FromSlash("/elsewhere/a.md"),
	}, filepath.FromSlash("/site"), "")

	assert.Equal(t, filepath.FromSlash("/elsewhere/a.md"), row.Source)
	assert.Empty(t, row.Target)
	assert.Equal(t, pretty.StatusUnchanged, row.Status)
}
