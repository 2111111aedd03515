// ABOUTME: Persistent analytics store backing the in-process aggregate
// ABOUTME: One transactional write per completed session; reads rebuild the aggregate
package sqlite

import (
	"fmt"

	"github.com/cucobaby/studyengine/internal/models"
)

// AnalyticsStore persists completed quiz sessions and per-topic counters.
type AnalyticsStore struct {
	db *DB
}

// NewAnalyticsStore creates a store over the given database.
func NewAnalyticsStore(db *DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// SaveSession records one completed session and folds its topic counts into
// the persistent counters, atomically.
func (s *AnalyticsStore) SaveSession(cfg models.QuizConfig, summary models.QuizSummary, answered, correct int, byTopic map[string]models.TopicPerformance) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting analytics transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO quiz_sessions (id, topic, quiz_type, quiz_format, difficulty, score, answered, total_questions, percentage, duration_ms, ended_early)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.SessionID, cfg.Topic, string(cfg.Type), string(cfg.Format), string(cfg.Difficulty),
		summary.Score, answered, summary.TotalQuestions, summary.Percentage,
		summary.Duration.Milliseconds(), boolToInt(summary.EndedEarly),
	)
	if err != nil {
		return fmt.Errorf("saving quiz session: %w", err)
	}

	for topic, perf := range byTopic {
		_, err = tx.Exec(`
			INSERT INTO topic_performance (topic, correct, incorrect)
			VALUES (?, ?, ?)
			ON CONFLICT(topic) DO UPDATE SET
				correct = correct + excluded.correct,
				incorrect = incorrect + excluded.incorrect`,
			topic, perf.Correct, perf.Incorrect,
		)
		if err != nil {
			return fmt.Errorf("updating topic performance for %q: %w", topic, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing analytics transaction: %w", err)
	}
	return nil
}

// LoadAggregate rebuilds the analytics aggregate from persisted sessions.
func (s *AnalyticsStore) LoadAggregate() (*models.AnalyticsAggregate, error) {
	agg := models.NewAnalyticsAggregate()

	row := s.db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(answered), 0), COALESCE(SUM(score), 0)
		FROM quiz_sessions`)
	if err := row.Scan(&agg.TotalSessions, &agg.TotalQuestions, &agg.TotalCorrect); err != nil {
		return nil, fmt.Errorf("loading session totals: %w", err)
	}

	rows, err := s.db.conn.Query(`SELECT topic, correct, incorrect FROM topic_performance`)
	if err != nil {
		return nil, fmt.Errorf("loading topic performance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var topic string
		var perf models.TopicPerformance
		if err := rows.Scan(&topic, &perf.Correct, &perf.Incorrect); err != nil {
			return nil, fmt.Errorf("scanning topic performance: %w", err)
		}
		agg.ByTopic[topic] = perf
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading topic performance: %w", err)
	}

	return agg, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
