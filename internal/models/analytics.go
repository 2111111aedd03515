// ABOUTME: Analytics aggregate accumulated across completed quiz sessions
// ABOUTME: Explicit value type folded once per session under a single writer
package models

// TopicPerformance counts correct and incorrect answers for one topic.
type TopicPerformance struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Accuracy returns the fraction of correct answers, or 0 when no attempts exist.
func (p TopicPerformance) Accuracy() float64 {
	total := p.Correct + p.Incorrect
	if total == 0 {
		return 0
	}
	return float64(p.Correct) / float64(total)
}

// AnalyticsAggregate holds running totals across all completed sessions.
type AnalyticsAggregate struct {
	TotalSessions  int                         `json:"total_quizzes"`
	TotalQuestions int                         `json:"total_questions_answered"`
	TotalCorrect   int                         `json:"total_correct"`
	ByTopic        map[string]TopicPerformance `json:"topic_performance"`
}

// NewAnalyticsAggregate returns an empty aggregate ready for folding.
func NewAnalyticsAggregate() *AnalyticsAggregate {
	return &AnalyticsAggregate{ByTopic: make(map[string]TopicPerformance)}
}

// OverallAccuracy returns the accuracy across every answered question.
func (a *AnalyticsAggregate) OverallAccuracy() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return float64(a.TotalCorrect) / float64(a.TotalQuestions)
}

// Fold merges one completed session's counts into the aggregate.
func (a *AnalyticsAggregate) Fold(answered, correct int, byTopic map[string]TopicPerformance) {
	if a.ByTopic == nil {
		a.ByTopic = make(map[string]TopicPerformance)
	}
	a.TotalSessions++
	a.TotalQuestions += answered
	a.TotalCorrect += correct
	for topic, perf := range byTopic {
		cur := a.ByTopic[topic]
		cur.Correct += perf.Correct
		cur.Incorrect += perf.Incorrect
		a.ByTopic[topic] = cur
	}
}

// Clone returns a deep copy so callers can read without holding locks.
func (a *AnalyticsAggregate) Clone() *AnalyticsAggregate {
	out := &AnalyticsAggregate{
		TotalSessions:  a.TotalSessions,
		TotalQuestions: a.TotalQuestions,
		TotalCorrect:   a.TotalCorrect,
		ByTopic:        make(map[string]TopicPerformance, len(a.ByTopic)),
	}
	for k, v := range a.ByTopic {
		out.ByTopic[k] = v
	}
	return out
}
