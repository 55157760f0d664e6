package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/pkg/fsutil"
	"github.com/yaklabco/exarch/pkg/gemtext"
)

// stdinArg selects standard input as the convert source.
const stdinArg = "-"

func newConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert one Markdown document to Gemtext",
		Long: `Convert a single Markdown document to Gemtext.

The document is read from the named file, or from standard input when the
argument is "-" or omitted. Front matter delimited by "+++" is dropped. The
result is written to standard output unless --output is given.`,
		Example: `  exarch convert README.md
  cat post.md | exarch convert > post.gmi
  exarch convert post.md -o post.gmi`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := stdinArg
			if len(args) > 0 {
				source = args[0]
			}
			return runConvert(cmd, source, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write Gemtext to this file instead of stdout")

	return cmd
}

func runConvert(cmd *cobra.Command, source, output string) error {
	ctx := cmd.Context()

	var (
		content []byte
		err     error
	)
	if source == stdinArg {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			err = fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, err = fsutil.ReadFile(ctx, source)
	}
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	doc, err := gemtext.NewConverter(nil).ConvertDocument(string(content))
	if err != nil {
		return withExitCode(ExitInternalError, err)
	}

	logger := logging.Default()
	if doc.MetadataErr != nil {
		logger.Warn("ignoring front matter", logging.FieldInput, source, logging.FieldError, doc.MetadataErr)
	}
	logger.Debug("converted",
		logging.FieldInput, source,
		logging.FieldTitle, doc.Metadata.Title,
		logging.FieldBytes, len(doc.Gemtext),
	)

	if output != "" {
		if err := fsutil.WriteAtomic(ctx, output, doc.Gemtext, fsutil.DefaultFileMode); err != nil {
			return withExitCode(ExitIOError, err)
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(append(doc.Gemtext, '\n')); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write output: %w", err))
	}
	return nil
}
