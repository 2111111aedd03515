// ABOUTME: CLI command to list quiz-eligible topics in course content
// ABOUTME: Runs content analysis and reports topics with enough key concepts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topicsFiles []string

// NewTopicsCmd creates the topics command
func NewTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List topics eligible for quiz generation",
		Long: `Analyze course content and list the topics a quiz can be built from.

Only topics with enough key concepts to support meaningful questions
are listed. Requires an OpenAI API key for the content analysis.

Examples:
  studyengine topics --file notes.md
  studyengine topics --file notes.md --format json`,
		RunE: runTopics,
	}

	cmd.Flags().StringSliceVar(&topicsFiles, "file", []string{}, "Content file to analyze (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runTopics(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := ingestFiles(ctx, engine, topicsFiles); err != nil {
		return err
	}

	topics, err := engine.AvailableTopics(ctx)
	if err != nil {
		return fmt.Errorf("analyzing content: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"topics": topics})
	}

	out := cmd.OutOrStdout()
	if len(topics) == 0 {
		fmt.Fprintln(out, "No topics have enough content for a quiz yet.")
		return nil
	}
	fmt.Fprintln(out, "Quiz topics:")
	for i, topic := range topics {
		fmt.Fprintf(out, "  %d. %s\n", i+1, topic)
	}
	return nil
}
