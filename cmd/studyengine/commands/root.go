// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all studyengine CLI operations
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗
██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝
███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝
╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝
███████║   ██║   ╚██████╔╝██████╔╝   ██║
╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studyengine",
		Short: "Study assistant for your course materials",
		Long: banner + `
Study Engine turns your course materials into a study assistant.

Upload notes and readings, ask questions answered from your own
content, and take interactive quizzes generated from it.

Examples:
  studyengine ask --file photosynthesis.md "What is the Calvin cycle?"
  studyengine quiz --file notes.md "quiz me on enzymes"
  studyengine topics --file notes.md
  studyengine stats`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, text, json)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewIngestCmd())
	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewTopicsCmd())
	rootCmd.AddCommand(NewQuizCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewMCPCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
