// ABOUTME: Interactive quiz command driving the full session protocol
// ABOUTME: Start, configure, question loop, and summary over stdin/stdout
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cucobaby/studyengine/internal/assistant"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/quiz"
)

var quizFiles []string

// NewQuizCmd creates the quiz command
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz [request]",
		Short: "Take an interactive quiz on your course content",
		Long: `Take an interactive quiz generated from your course materials.

The request is interpreted like a chat message: it can name a topic,
a question count, a quiz type, and a difficulty. Missing settings are
asked for interactively. During the quiz, type your answer, "skip" to
pass, or "end quiz" to stop early.

Requires an OpenAI API key for question generation.

Examples:
  studyengine quiz --file notes.md "quiz me on photosynthesis"
  studyengine quiz --file notes.md "give me 5 hard multiple choice questions on enzymes"
  studyengine quiz --file notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuiz,
	}

	cmd.Flags().StringSliceVar(&quizFiles, "file", []string{}, "Content file to quiz from (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runQuiz(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := ingestFiles(ctx, engine, quizFiles); err != nil {
		return err
	}

	utterance := "quiz me"
	if len(args) > 0 {
		utterance = args[0]
	}

	intent, session, err := engine.StartQuiz(ctx, utterance)
	if err != nil {
		return fmt.Errorf("starting quiz: %w", err)
	}
	if !intent.IsQuizRequest {
		return fmt.Errorf("%q does not look like a quiz request", utterance)
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewScanner(cmd.InOrStdin())

	session, err = configureSession(ctx, engine, session, intent, utterance, reader, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nStarting a %d-question quiz on %s. Type \"skip\" to pass or \"end quiz\" to stop.\n",
		len(session.Questions), session.Config.Topic)

	return runQuestions(ctx, engine, session, reader, out)
}

// configureSession resolves the quiz configuration, retrying interactively
// while the topic cannot be matched. The starting utterance gets the first
// attempt when it already names a topic.
func configureSession(ctx context.Context, engine *assistant.Assistant, session *quiz.Session, intent quiz.Intent, utterance string, reader *bufio.Scanner, out io.Writer) (*quiz.Session, error) {
	attempt := ""
	if intent.Parameters.Topic != "" {
		attempt = utterance
	}

	for {
		if attempt == "" {
			fmt.Fprintf(out, "Available topics: %s\n", strings.Join(session.AvailableTopics, ", "))
			fmt.Fprint(out, "What would you like to be quizzed on? ")
			if !reader.Scan() {
				return nil, fmt.Errorf("no configuration input")
			}
			attempt = strings.TrimSpace(reader.Text())
			if attempt == "" {
				continue
			}
		}

		configured, err := engine.ConfigureQuiz(ctx, session.ID, attempt)
		if err != nil {
			var cfgErr *quiz.ConfigError
			if errors.As(err, &cfgErr) {
				fmt.Fprintf(out, "%s\n", cfgErr.Reason)
				if len(cfgErr.Suggestions) > 0 {
					fmt.Fprintf(out, "Try one of: %s\n", strings.Join(cfgErr.Suggestions, ", "))
				}
				attempt = ""
				continue
			}
			return nil, fmt.Errorf("configuring quiz: %w", err)
		}
		return configured, nil
	}
}

// runQuestions drives the answer loop until the session completes.
func runQuestions(ctx context.Context, engine *assistant.Assistant, session *quiz.Session, reader *bufio.Scanner, out io.Writer) error {
	flashcard := session.Config.Format == models.FormatFlashcard
	total := len(session.Questions)

	for {
		question, err := session.CurrentQuestion()
		if err != nil {
			return err
		}
		printQuestion(out, question, session.Current+1, total, flashcard)

		fmt.Fprint(out, "> ")
		if !reader.Scan() {
			// Input closed mid-quiz; end the session so analytics still fold
			result, err := engine.EndQuiz(ctx, session.ID)
			if err != nil {
				return err
			}
			printSummary(out, result.Summary)
			return nil
		}

		result, err := engine.SubmitAnswer(ctx, session.ID, session.Current, reader.Text())
		if err != nil {
			return fmt.Errorf("submitting answer: %w", err)
		}

		printFeedback(out, result)
		if result.Done {
			printSummary(out, result.Summary)
			return nil
		}
	}
}

func printQuestion(out io.Writer, q models.QuizQuestion, number, total int, flashcard bool) {
	fmt.Fprintf(out, "\nQuestion %d/%d: %s\n", number, total, q.Prompt)
	if !flashcard {
		for _, option := range q.Options {
			fmt.Fprintf(out, "  %s\n", option)
		}
	}
}

func printFeedback(out io.Writer, result quiz.TurnResult) {
	switch {
	case result.Summary != nil && result.Summary.EndedEarly:
		// End command; no per-question feedback
	case result.Skipped:
		fmt.Fprintf(out, "Skipped. The answer was: %s\n", result.CorrectAnswer)
	case result.Correct:
		fmt.Fprintln(out, "✓ Correct!")
	default:
		fmt.Fprintf(out, "✗ Incorrect. The answer was: %s\n", result.CorrectAnswer)
	}
	if result.Correct || result.Skipped || (result.Summary != nil && result.Summary.EndedEarly) {
		return
	}
	if result.Feedback != "" {
		fmt.Fprintf(out, "  %s\n", result.Feedback)
	} else if result.Explanation != "" {
		fmt.Fprintf(out, "  %s\n", result.Explanation)
	}
}

func printSummary(out io.Writer, summary *models.QuizSummary) {
	if summary == nil {
		return
	}
	fmt.Fprintf(out, "\nQuiz complete: %d/%d (%.0f%%)\n", summary.Score, summary.TotalQuestions, summary.Percentage)
	if summary.EndedEarly {
		fmt.Fprintln(out, "Ended early.")
	}
	if len(summary.WeakTopics) > 0 {
		fmt.Fprintf(out, "Areas to review: %s\n", strings.Join(summary.WeakTopics, ", "))
	}
}
