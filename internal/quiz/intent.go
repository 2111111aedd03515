// ABOUTME: Quiz intent detection from free-text utterances
// ABOUTME: Combines a keyword vocabulary with imperative phrasing patterns
package quiz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cucobaby/studyengine/internal/models"
)

// Confidence grades how strongly an utterance signals a quiz request.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Question count bounds for extracted quiz lengths.
const (
	MinQuestions = 1
	MaxQuestions = 20
)

// Intent is the result of classifying an utterance.
type Intent struct {
	IsQuizRequest bool
	Confidence    Confidence
	Parameters    Parameters
}

// Parameters are the quiz settings extracted from an utterance, regardless
// of whether it was classified as a quiz request.
type Parameters struct {
	Topic      string
	Count      int
	HasCount   bool
	Type       models.QuizType
	Format     models.QuizFormat
	Difficulty models.Difficulty
}

var quizKeywords = []string{
	"quiz", "test", "questions", "practice", "assess", "evaluate",
	"exam", "review", "flashcard", "multiple choice",
	"fill in blank", "true false",
}

var quizPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(create|generate|make|give me|start) (a |an )?(quiz|test)`),
	regexp.MustCompile(`quiz me (on|about)`),
	regexp.MustCompile(`quiz.*me.*on`),
	regexp.MustCompile(`(test|assess) my (knowledge|understanding)`),
	regexp.MustCompile(`practice (questions|problems)`),
	regexp.MustCompile(`(multiple choice|fill.in.blank|flashcard) (questions|quiz)`),
	regexp.MustCompile(`(\d+) questions? (about|on)`),
	regexp.MustCompile(`study (with|using) (questions|quiz|flashcards)`),
	regexp.MustCompile(`^quiz\s+.*`),
	regexp.MustCompile(`quiz.*about`),
}

var countPattern = regexp.MustCompile(`(\d+)\s*(?:questions?|problems?)`)

// topicPattern captures a best-effort topic after "on" or "about".
var topicPattern = regexp.MustCompile(`(?:\bon\b|\babout\b)\s+(.+)$`)

// IntentDetector classifies utterances as quiz requests.
type IntentDetector struct{}

// NewIntentDetector creates a detector.
func NewIntentDetector() *IntentDetector {
	return &IntentDetector{}
}

// Detect classifies the utterance. A pattern match gives high confidence, a
// keyword alone gives medium; parameters are extracted in either case.
func (d *IntentDetector) Detect(utterance string) Intent {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	patternMatched := false
	for _, pattern := range quizPatterns {
		if pattern.MatchString(lower) {
			patternMatched = true
			break
		}
	}

	keywordMatched := false
	for _, keyword := range quizKeywords {
		if strings.Contains(lower, keyword) {
			keywordMatched = true
			break
		}
	}

	intent := Intent{
		IsQuizRequest: patternMatched || keywordMatched,
		Confidence:    ConfidenceLow,
		Parameters:    ExtractParameters(lower),
	}
	switch {
	case patternMatched:
		intent.Confidence = ConfidenceHigh
	case keywordMatched:
		intent.Confidence = ConfidenceMedium
	}
	return intent
}

// ExtractParameters pulls quiz settings out of a lowercased utterance.
// Missing settings get the defaults: mixed type, standard format, medium
// difficulty. Counts are clamped to [1, 20].
func ExtractParameters(lower string) Parameters {
	params := Parameters{
		Type:       models.QuizMixed,
		Format:     models.FormatStandard,
		Difficulty: models.DifficultyMedium,
	}

	if m := countPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			params.Count = clampCount(n)
			params.HasCount = true
		}
	}

	switch {
	case strings.Contains(lower, "multiple choice"), strings.Contains(lower, "multiple-choice"):
		params.Type = models.QuizMultipleChoice
	case strings.Contains(lower, "fill in"), strings.Contains(lower, "fill-in"), strings.Contains(lower, "blank"):
		params.Type = models.QuizFillInBlank
	}

	if strings.Contains(lower, "flashcard") || strings.Contains(lower, "flash card") {
		params.Format = models.FormatFlashcard
	}

	switch {
	case strings.Contains(lower, "easy"), strings.Contains(lower, "simple"), strings.Contains(lower, "basic"):
		params.Difficulty = models.DifficultyEasy
	case strings.Contains(lower, "hard"), strings.Contains(lower, "difficult"), strings.Contains(lower, "advanced"),
		strings.Contains(lower, "challenging"):
		params.Difficulty = models.DifficultyHard
	}

	if m := topicPattern.FindStringSubmatch(lower); m != nil {
		params.Topic = cleanTopic(m[1])
	}

	return params
}

func clampCount(n int) int {
	if n < MinQuestions {
		return MinQuestions
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}

// cleanTopic strips quiz vocabulary and punctuation from a captured topic
// phrase.
func cleanTopic(raw string) string {
	raw = strings.Trim(raw, " .,!?")
	words := strings.Fields(raw)
	var kept []string
	for _, word := range words {
		trimmed := strings.Trim(word, ".,!?")
		if isQuizVocabulary(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}

func isQuizVocabulary(word string) bool {
	switch word {
	case "quiz", "test", "question", "questions", "practice", "flashcard",
		"flashcards", "please", "me", "a", "an", "the", "with":
		return true
	}
	return false
}
