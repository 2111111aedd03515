// ABOUTME: Tests for quiz question generation
// ABOUTME: Uses the mock completer to verify plans, parsing, and failure handling
package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
)

const mcJSON = `{
	"question": "Which organelle produces ATP?",
	"correct_answer": "A",
	"options": ["A) Mitochondria", "B) Nucleus", "C) Ribosome", "D) Golgi"],
	"explanation": "Mitochondria run oxidative phosphorylation."
}`

const fibJSON = `{
	"question": "The _____ is the powerhouse of the cell.",
	"correct_answer": "mitochondria",
	"explanation": "Mitochondria generate most of the cell's ATP."
}`

func mixedConfig(length int) models.QuizConfig {
	return models.QuizConfig{
		Topic:      "Cell Biology",
		Type:       models.QuizMixed,
		Format:     models.FormatStandard,
		Length:     length,
		Difficulty: models.DifficultyMedium,
	}
}

func TestGenerateMixed(t *testing.T) {
	mock := llm.NewMockCompleter(mcJSON, fibJSON, mcJSON, fibJSON)
	g := NewGenerator(mock, false)

	questions, err := g.Generate(context.Background(), mixedConfig(4), "")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if q.ID == "" {
			t.Errorf("question %d has empty id", i)
		}
		if q.Topic != "Cell Biology" {
			t.Errorf("question %d has wrong topic %q", i, q.Topic)
		}
		expectedType := models.QuizMultipleChoice
		if i%2 == 1 {
			expectedType = models.QuizFillInBlank
		}
		if q.Type != expectedType {
			t.Errorf("question %d type = %q, want %q", i, q.Type, expectedType)
		}
	}
	if len(questions[0].Options) != 4 {
		t.Errorf("expected 4 options on multiple choice, got %d", len(questions[0].Options))
	}
	if questions[1].Options != nil {
		t.Errorf("fill-in-blank should have no options, got %v", questions[1].Options)
	}
}

func TestGenerateSkipsBadResponses(t *testing.T) {
	// Second response is malformed; the question is skipped, not fatal
	mock := llm.NewMockCompleter(mcJSON, "garbage", mcJSON)
	g := NewGenerator(mock, false)

	questions, err := g.Generate(context.Background(), models.QuizConfig{
		Topic: "Enzymes", Type: models.QuizMultipleChoice, Length: 3, Difficulty: models.DifficultyEasy,
	}, "")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 surviving questions, got %d", len(questions))
	}
}

func TestGenerateAllFail(t *testing.T) {
	mock := &llm.MockCompleter{Err: errors.New("api down")}
	g := NewGenerator(mock, false)

	_, err := g.Generate(context.Background(), mixedConfig(3), "")
	if !errors.Is(err, ErrQuestionGeneration) {
		t.Errorf("expected ErrQuestionGeneration, got %v", err)
	}
}

func TestGenerateMissingOptionsRejected(t *testing.T) {
	mock := llm.NewMockCompleter(fibJSON) // no options for a multiple choice request
	g := NewGenerator(mock, false)

	_, err := g.Generate(context.Background(), models.QuizConfig{
		Topic: "DNA", Type: models.QuizMultipleChoice, Length: 1, Difficulty: models.DifficultyMedium,
	}, "")
	if !errors.Is(err, ErrQuestionGeneration) {
		t.Errorf("expected ErrQuestionGeneration when the only question is invalid, got %v", err)
	}
}

func TestGenerateIncludesSourceContent(t *testing.T) {
	mock := llm.NewMockCompleter(mcJSON)
	g := NewGenerator(mock, false)

	_, err := g.Generate(context.Background(), models.QuizConfig{
		Topic: "Osmosis", Type: models.QuizMultipleChoice, Length: 1, Difficulty: models.DifficultyMedium,
	}, "Osmosis moves water across semipermeable membranes.")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(mock.UserPrompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(mock.UserPrompts))
	}
	prompt := mock.UserPrompts[0]
	if !strings.Contains(prompt, "Osmosis moves water") {
		t.Error("expected source content in the prompt")
	}
	if !strings.Contains(prompt, "medium difficulty multiple choice") {
		t.Error("expected difficulty and type in the prompt")
	}
}

func TestFeedback(t *testing.T) {
	question := models.QuizQuestion{
		Prompt:        "Which organelle produces ATP?",
		CorrectAnswer: "A) Mitochondria",
		Explanation:   "Mitochondria run oxidative phosphorylation.",
	}

	t.Run("uses model feedback", func(t *testing.T) {
		mock := llm.NewMockCompleter("Close, but the nucleus stores DNA; mitochondria make ATP.")
		g := NewGenerator(mock, false)

		got := g.Feedback(context.Background(), question, "B) Nucleus")
		if !strings.Contains(got, "mitochondria make ATP") {
			t.Errorf("Feedback() = %q, want model response", got)
		}
		if len(mock.UserPrompts) != 1 || !strings.Contains(mock.UserPrompts[0], `"B) Nucleus"`) {
			t.Errorf("expected the student answer in the prompt, got %v", mock.UserPrompts)
		}
	})

	t.Run("falls back to explanation on error", func(t *testing.T) {
		g := NewGenerator(&llm.MockCompleter{Err: errors.New("api down")}, false)

		if got := g.Feedback(context.Background(), question, "B"); got != question.Explanation {
			t.Errorf("Feedback() = %q, want stored explanation", got)
		}
	})

	t.Run("falls back without a model", func(t *testing.T) {
		g := NewGenerator(nil, false)

		if got := g.Feedback(context.Background(), question, "B"); got != question.Explanation {
			t.Errorf("Feedback() = %q, want stored explanation", got)
		}
	})
}
