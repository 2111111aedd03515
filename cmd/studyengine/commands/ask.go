// ABOUTME: CLI command to ask a question against course content
// ABOUTME: Ingests the given files then retrieves and synthesizes an answer
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askFiles []string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your course content",
		Long: `Ask a question answered from your own course materials.

The given files are chunked and indexed, then the question is expanded
into multiple search queries, the best matches are ranked, and an answer
is synthesized from them. With an OpenAI API key the answer is written
by the model; without one it falls back to a content extract.

Examples:
  studyengine ask --file photosynthesis.md "What is the Calvin cycle?"
  studyengine ask --file ch1.md --file ch2.md "How do enzymes lower activation energy?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringSliceVar(&askFiles, "file", []string{}, "Content file to index (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := ingestFiles(ctx, engine, askFiles); err != nil {
		return err
	}

	answer, related, err := engine.Answer(ctx, args[0])
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"answer":         answer.Text,
			"confidence":     answer.Confidence,
			"sources":        answer.Sources,
			"method":         answer.Method,
			"related_topics": related,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, answer.Text)
	if !quiet {
		fmt.Fprintf(out, "\nConfidence: %.1f (%s)\n", answer.Confidence, answer.Method)
		if len(related) > 0 {
			fmt.Fprintf(out, "Related topics: %s\n", strings.Join(related, ", "))
		}
	}
	return nil
}
