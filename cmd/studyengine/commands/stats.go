// ABOUTME: CLI command to show accumulated quiz performance analytics
// ABOUTME: Reads the persisted aggregate and prints totals and per-topic accuracy
package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cucobaby/studyengine/internal/storage/sqlite"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz performance analytics",
		Long: `Show performance analytics accumulated across completed quizzes.

Reports total quizzes taken, questions answered, overall accuracy, and
per-topic accuracy from the analytics database.

Examples:
  studyengine stats
  studyengine stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(analyticsDBPath())
	if err != nil {
		return fmt.Errorf("opening analytics database: %w", err)
	}
	defer func() { _ = db.Close() }()

	agg, err := sqlite.NewAnalyticsStore(db).LoadAggregate()
	if err != nil {
		return fmt.Errorf("loading analytics: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), agg)
	}

	out := cmd.OutOrStdout()
	if agg.TotalSessions == 0 {
		fmt.Fprintln(out, "No quizzes completed yet.")
		return nil
	}

	fmt.Fprintf(out, "Quizzes taken:      %d\n", agg.TotalSessions)
	fmt.Fprintf(out, "Questions answered: %d\n", agg.TotalQuestions)
	fmt.Fprintf(out, "Overall accuracy:   %.0f%%\n", agg.OverallAccuracy()*100)

	if len(agg.ByTopic) == 0 {
		return nil
	}

	topics := make([]string, 0, len(agg.ByTopic))
	for topic := range agg.ByTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tCORRECT\tINCORRECT\tACCURACY")
	for _, topic := range topics {
		perf := agg.ByTopic[topic]
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\n", topic, perf.Correct, perf.Incorrect, perf.Accuracy()*100)
	}
	return w.Flush()
}
