// ABOUTME: Tests for the SQLite analytics store
// ABOUTME: Uses an in-memory database for save/load round trips
package sqlite

import (
	"testing"
	"time"

	"github.com/cucobaby/studyengine/internal/models"
)

func testStore(t *testing.T) *AnalyticsStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewAnalyticsStore(db)
}

func sessionFixture(id string) (models.QuizConfig, models.QuizSummary) {
	cfg := models.QuizConfig{
		Topic:      "Glycolysis",
		Type:       models.QuizMultipleChoice,
		Format:     models.FormatStandard,
		Length:     5,
		Difficulty: models.DifficultyMedium,
	}
	summary := models.QuizSummary{
		SessionID:      id,
		Score:          3,
		TotalQuestions: 5,
		Percentage:     60.0,
		Duration:       90 * time.Second,
	}
	return cfg, summary
}

func TestSaveAndLoadAggregate(t *testing.T) {
	store := testStore(t)

	cfg, summary := sessionFixture("s1")
	byTopic := map[string]models.TopicPerformance{
		"Glycolysis": {Correct: 3, Incorrect: 2},
	}
	if err := store.SaveSession(cfg, summary, 5, 3, byTopic); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	agg, err := store.LoadAggregate()
	if err != nil {
		t.Fatalf("LoadAggregate() failed: %v", err)
	}
	if agg.TotalSessions != 1 {
		t.Errorf("expected 1 session, got %d", agg.TotalSessions)
	}
	if agg.TotalQuestions != 5 || agg.TotalCorrect != 3 {
		t.Errorf("unexpected totals: questions=%d correct=%d", agg.TotalQuestions, agg.TotalCorrect)
	}
	if agg.ByTopic["Glycolysis"].Correct != 3 || agg.ByTopic["Glycolysis"].Incorrect != 2 {
		t.Errorf("unexpected topic counts: %+v", agg.ByTopic["Glycolysis"])
	}
}

func TestSaveAccumulatesAcrossSessions(t *testing.T) {
	store := testStore(t)

	cfg, first := sessionFixture("s1")
	if err := store.SaveSession(cfg, first, 5, 3, map[string]models.TopicPerformance{
		"Glycolysis": {Correct: 3, Incorrect: 2},
	}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	_, second := sessionFixture("s2")
	second.EndedEarly = true
	if err := store.SaveSession(cfg, second, 2, 2, map[string]models.TopicPerformance{
		"Glycolysis": {Correct: 2},
	}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	agg, err := store.LoadAggregate()
	if err != nil {
		t.Fatalf("LoadAggregate() failed: %v", err)
	}
	if agg.TotalSessions != 2 {
		t.Errorf("expected 2 sessions, got %d", agg.TotalSessions)
	}
	if agg.TotalQuestions != 7 || agg.TotalCorrect != 5 {
		t.Errorf("unexpected totals: questions=%d correct=%d", agg.TotalQuestions, agg.TotalCorrect)
	}
	if agg.ByTopic["Glycolysis"].Correct != 5 || agg.ByTopic["Glycolysis"].Incorrect != 2 {
		t.Errorf("unexpected accumulated topic counts: %+v", agg.ByTopic["Glycolysis"])
	}
}

func TestDuplicateSessionIDRejected(t *testing.T) {
	store := testStore(t)

	cfg, summary := sessionFixture("s1")
	if err := store.SaveSession(cfg, summary, 5, 3, nil); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.SaveSession(cfg, summary, 5, 3, nil); err == nil {
		t.Error("expected primary key violation for duplicate session id")
	}
}

func TestLoadEmptyAggregate(t *testing.T) {
	store := testStore(t)

	agg, err := store.LoadAggregate()
	if err != nil {
		t.Fatalf("LoadAggregate() failed: %v", err)
	}
	if agg.TotalSessions != 0 || len(agg.ByTopic) != 0 {
		t.Errorf("expected empty aggregate, got %+v", agg)
	}
}
