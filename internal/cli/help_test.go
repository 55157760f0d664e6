package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func plainFormatter() *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(false)}
}

func TestSplitFlagLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		flag      string
		desc      string
		wantSplit bool
	}{
		{line: "-p, --port int   port to listen on", flag: "-p, --port int", desc: "port to listen on", wantSplit: true},
		{line: "--debug   enable debug logging", flag: "--debug", desc: "enable debug logging", wantSplit: true},
		{line: "--debug", wantSplit: false},
		{line: "--debug   ", wantSplit: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			flag, desc, ok := splitFlagLine(tt.line)
			assert.Equal(t, tt.wantSplit, ok)
			assert.Equal(t, tt.flag, flag)
			assert.Equal(t, tt.desc, desc)
		})
	}
}

func TestStyleFlagsUsage_Plain(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntP("port", "p", 1965, "port to listen on")

	got := plainFormatter().styleFlagsUsage(flags)
	assert.Equal(t, "  -p, --port int   port to listen on (default 1965)", got)

	assert.Empty(t, plainFormatter().styleFlagsUsage(pflag.NewFlagSet("empty", pflag.ContinueOnError)))
}

func TestStyleExamples_Plain(t *testing.T) {
	t.Parallel()

	example := "  exarch init            Create .exarch.yml\n  exarch build ./site"
	got := plainFormatter().styleExamples(example)
	assert.Equal(t, "  exarch init   Create .exarch.yml\n  exarch build ./site", got)
}

func TestRpadAndTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", rpad("ab", 4))
	assert.Equal(t, "abcdef", rpad("abcdef", 4))
	assert.Equal(t, "a\nb", trimTrailingWhitespaces("a \t\nb  "))
}
