// ABOUTME: Error types for the quiz engine
// ABOUTME: Recoverable configuration errors carry topic suggestions for the user
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoActiveSession is returned when a turn references a session id
	// that does not exist or has already completed.
	ErrNoActiveSession = errors.New("no active quiz session")

	// ErrTopicNotEligible rejects quizzes for topics without enough key
	// concepts before any external call is made.
	ErrTopicNotEligible = errors.New("topic does not have enough key concepts for a quiz")

	// ErrQuestionGeneration is returned when no questions could be
	// generated for a resolved configuration.
	ErrQuestionGeneration = errors.New("failed to generate any quiz questions")

	// ErrTurnMismatch rejects an answer submitted for a question other
	// than the one currently awaiting an answer, so duplicated or stale
	// requests never score the wrong question.
	ErrTurnMismatch = errors.New("turn index does not match the current question")
)

// maxTopicSuggestions bounds how many topics a ConfigError suggests.
const maxTopicSuggestions = 3

// ConfigError reports an unresolvable quiz configuration. It is a
// recoverable condition carrying suggested topics, not a fatal error.
type ConfigError struct {
	Reason      string
	Suggestions []string
}

func (e *ConfigError) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s (try one of: %s)", e.Reason, strings.Join(e.Suggestions, ", "))
}

// NewTopicError builds a ConfigError listing the first few available topics.
func NewTopicError(utterance string, available []string) *ConfigError {
	suggestions := available
	if len(suggestions) > maxTopicSuggestions {
		suggestions = suggestions[:maxTopicSuggestions]
	}
	return &ConfigError{
		Reason:      fmt.Sprintf("could not match %q to an available topic", utterance),
		Suggestions: suggestions,
	}
}
