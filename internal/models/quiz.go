// ABOUTME: Quiz domain types shared by intent detection, configuration, and sessions
// ABOUTME: Topics come from content analysis; questions are generated per session
package models

import "time"

// QuizType selects the kind of questions a quiz contains
type QuizType string

const (
	QuizMultipleChoice QuizType = "multiple_choice"
	QuizFillInBlank    QuizType = "fill_in_blank"
	QuizMixed          QuizType = "mixed"
)

// QuizFormat selects how questions are presented
type QuizFormat string

const (
	FormatStandard  QuizFormat = "standard"
	FormatFlashcard QuizFormat = "flashcard"
)

// Difficulty levels recognized in quiz requests and topic analysis
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MinKeyConcepts is the smallest concept count a topic needs before it can
// back a quiz. Topics below this are never exposed to the configurator.
const MinKeyConcepts = 3

// QuizTopic is a topic discovered by content analysis.
type QuizTopic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	KeyConcepts []string `json:"key_concepts"`
	Subtopics   []string `json:"subtopics,omitempty"`
	Difficulty  string   `json:"difficulty_level"`
}

// Eligible reports whether the topic has enough key concepts for quiz generation.
func (t QuizTopic) Eligible() bool {
	return len(t.KeyConcepts) >= MinKeyConcepts
}

// ContentAnalysis is the result of analyzing the knowledge base.
type ContentAnalysis struct {
	SubjectArea string      `json:"subject_area"`
	Difficulty  string      `json:"overall_difficulty"`
	Topics      []QuizTopic `json:"topics"`
}

// EligibleTopics returns only the topics with enough key concepts for a quiz.
func (a ContentAnalysis) EligibleTopics() []QuizTopic {
	var out []QuizTopic
	for _, t := range a.Topics {
		if t.Eligible() {
			out = append(out, t)
		}
	}
	return out
}

// QuizQuestion is one generated question, held for the owning session's lifetime.
type QuizQuestion struct {
	ID            string     `json:"id"`
	Type          QuizType   `json:"type"`
	Prompt        string     `json:"question"`
	CorrectAnswer string     `json:"correct_answer"`
	Options       []string   `json:"options,omitempty"`
	Explanation   string     `json:"explanation"`
	Topic         string     `json:"topic"`
	Difficulty    Difficulty `json:"difficulty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// QuizConfig is a fully resolved quiz specification.
type QuizConfig struct {
	Topic      string     `json:"topic"`
	Type       QuizType   `json:"quiz_type"`
	Format     QuizFormat `json:"quiz_format"`
	Length     int        `json:"length"`
	Difficulty Difficulty `json:"difficulty"`
}

// QuizAttempt records one submitted answer.
type QuizAttempt struct {
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"user_answer"`
	Correct    bool      `json:"is_correct"`
	Skipped    bool      `json:"skipped,omitempty"`
	Feedback   string    `json:"feedback,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// QuizSummary is produced when a session completes.
type QuizSummary struct {
	SessionID      string        `json:"session_id"`
	Score          int           `json:"score"`
	TotalQuestions int           `json:"total_questions"`
	Percentage     float64       `json:"percentage"`
	Duration       time.Duration `json:"duration"`
	EndedEarly     bool          `json:"ended_early"`
	WeakTopics     []string      `json:"areas_for_improvement,omitempty"`
}
