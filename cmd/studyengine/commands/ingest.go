// ABOUTME: CLI command to inspect how course content is chunked and classified
// ABOUTME: Reports chunk counts and the detected subject for given files
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Chunk course content and report what was stored",
		Long: `Chunk one or more content files and report how they were split.

Markdown files are split along their "## " sections with each section
classified by type; plain text goes through the sliding-window splitter.
Useful for checking how material will be indexed before asking questions.

Examples:
  studyengine ingest photosynthesis.md
  studyengine ingest --format json chapter1.md chapter2.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	total, err := ingestFiles(cmd.Context(), engine, args)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"files":         len(args),
			"chunks_stored": total,
			"subject":       engine.Subject().Name(),
		})
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored %d chunks from %d file(s)\n", total, len(args))
		fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n", engine.Subject().DisplayName())
	}
	return nil
}
