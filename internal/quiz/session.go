// ABOUTME: Stateful quiz session: Configuring -> InProgress -> Complete
// ABOUTME: Scores answers, handles skip and early-end commands, and summarizes
package quiz

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cucobaby/studyengine/internal/models"
)

// State is a session's position in its lifecycle.
type State string

const (
	StateConfiguring State = "configuring"
	StateInProgress  State = "in_progress"
	StateComplete    State = "complete"
)

var endCommands = map[string]bool{
	"end quiz": true,
	"quit":     true,
	"stop":     true,
	"end":      true,
}

var choiceLetterPattern = regexp.MustCompile(`^([A-D])`)

// Session coordinates one multi-turn quiz interaction. Sessions are
// single-owner: one in-flight turn at a time per session id.
type Session struct {
	ID              string
	State           State
	Config          models.QuizConfig
	AvailableTopics []string
	Questions       []models.QuizQuestion
	Attempts        []models.QuizAttempt
	Current         int
	Score           int
	StartedAt       time.Time
	CompletedAt     time.Time
	EndedEarly      bool
}

// NewSession creates a session in the Configuring state holding the eligible
// topics the configurator may resolve against.
func NewSession(availableTopics []string) *Session {
	return &Session{
		ID:              uuid.New().String(),
		State:           StateConfiguring,
		AvailableTopics: availableTopics,
	}
}

// Begin moves the session to InProgress with the resolved configuration and
// its generated questions. At least one question is required.
func (s *Session) Begin(cfg models.QuizConfig, questions []models.QuizQuestion) error {
	if s.State != StateConfiguring {
		return fmt.Errorf("session %s is %s, not configuring", s.ID, s.State)
	}
	if len(questions) == 0 {
		return ErrQuestionGeneration
	}
	s.Config = cfg
	s.Questions = questions
	s.State = StateInProgress
	s.StartedAt = time.Now()
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (models.QuizQuestion, error) {
	if s.State != StateInProgress {
		return models.QuizQuestion{}, fmt.Errorf("session %s is %s", s.ID, s.State)
	}
	return s.Questions[s.Current], nil
}

// TurnResult reports what one submitted input did to the session.
type TurnResult struct {
	Correct       bool
	Skipped       bool
	CorrectAnswer string
	Explanation   string
	Feedback      string
	Score         int
	QuestionIndex int
	Done          bool
	Summary       *models.QuizSummary
}

// Submit processes one turn input: an answer string, "skip", or an end
// command. The turn index must name the question currently awaiting an
// answer; a stale or duplicated index is rejected with ErrTurnMismatch.
// End commands apply to the session as a whole and skip the index check.
// Answering or skipping the last question, or an end command, completes
// the session and attaches a summary to the result.
func (s *Session) Submit(turnIndex int, input string) (TurnResult, error) {
	if s.State != StateInProgress {
		return TurnResult{}, fmt.Errorf("session %s is %s: %w", s.ID, s.State, ErrNoActiveSession)
	}

	normalized := strings.ToLower(strings.TrimSpace(input))
	if endCommands[normalized] {
		summary := s.complete(true)
		return TurnResult{Score: s.Score, QuestionIndex: s.Current, Done: true, Summary: &summary}, nil
	}

	if turnIndex != s.Current {
		return TurnResult{}, fmt.Errorf("submitted turn %d but question %d is current: %w", turnIndex, s.Current, ErrTurnMismatch)
	}

	question := s.Questions[s.Current]
	result := TurnResult{
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		QuestionIndex: s.Current,
	}

	if normalized == "skip" {
		result.Skipped = true
		s.Attempts = append(s.Attempts, models.QuizAttempt{
			QuestionID: question.ID,
			Skipped:    true,
			Timestamp:  time.Now(),
		})
	} else {
		correct := checkAnswer(question, input)
		if correct {
			s.Score++
		}
		result.Correct = correct
		s.Attempts = append(s.Attempts, models.QuizAttempt{
			QuestionID: question.ID,
			Answer:     input,
			Correct:    correct,
			Timestamp:  time.Now(),
		})
	}

	s.Current++
	result.Score = s.Score

	if s.Current >= len(s.Questions) {
		summary := s.complete(false)
		result.Done = true
		result.Summary = &summary
	}
	return result, nil
}

// checkAnswer compares a submitted answer to the expected one. Multiple
// choice matches on the leading option letter; fill-in-the-blank accepts an
// exact match or containment in either direction.
func checkAnswer(question models.QuizQuestion, answer string) bool {
	if question.Type == models.QuizMultipleChoice {
		user := choiceLetterPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(answer)))
		expected := choiceLetterPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(question.CorrectAnswer)))
		if user != nil && expected != nil {
			return user[1] == expected[1]
		}
		return false
	}

	user := strings.ToLower(strings.TrimSpace(answer))
	expected := strings.ToLower(strings.TrimSpace(question.CorrectAnswer))
	if user == "" || expected == "" {
		return false
	}
	return user == expected || strings.Contains(expected, user) || strings.Contains(user, expected)
}

func (s *Session) complete(endedEarly bool) models.QuizSummary {
	s.State = StateComplete
	s.CompletedAt = time.Now()
	s.EndedEarly = endedEarly

	total := len(s.Questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(s.Score) / float64(total) * 100
	}

	return models.QuizSummary{
		SessionID:      s.ID,
		Score:          s.Score,
		TotalQuestions: total,
		Percentage:     percentage,
		Duration:       s.CompletedAt.Sub(s.StartedAt),
		EndedEarly:     endedEarly,
		WeakTopics:     s.weakTopics(),
	}
}

// weakTopics lists topics with at least one wrong answer, in first-miss order.
func (s *Session) weakTopics() []string {
	questionTopic := make(map[string]string, len(s.Questions))
	for _, q := range s.Questions {
		questionTopic[q.ID] = q.Topic
	}

	seen := make(map[string]bool)
	var topics []string
	for _, attempt := range s.Attempts {
		if attempt.Correct || attempt.Skipped {
			continue
		}
		topic := questionTopic[attempt.QuestionID]
		if topic == "" || seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
	}
	return topics
}

// TopicCounts returns per-topic correct/incorrect counts for answered
// questions, for folding into the analytics aggregate. Skips are excluded.
func (s *Session) TopicCounts() (answered, correct int, byTopic map[string]models.TopicPerformance) {
	questionTopic := make(map[string]string, len(s.Questions))
	for _, q := range s.Questions {
		questionTopic[q.ID] = q.Topic
	}

	byTopic = make(map[string]models.TopicPerformance)
	for _, attempt := range s.Attempts {
		if attempt.Skipped {
			continue
		}
		answered++
		perf := byTopic[questionTopic[attempt.QuestionID]]
		if attempt.Correct {
			correct++
			perf.Correct++
		} else {
			perf.Incorrect++
		}
		byTopic[questionTopic[attempt.QuestionID]] = perf
	}
	return answered, correct, byTopic
}
