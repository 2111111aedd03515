// ABOUTME: Tests for quiz configuration resolution
// ABOUTME: Covers topic matching strategies, presets, and the recoverable error path
package quiz

import (
	"errors"
	"testing"

	"github.com/cucobaby/studyengine/internal/models"
)

var availableTopics = []string{"Photosynthesis", "Glycolysis", "Cell Membrane Transport"}

func TestResolveOrdinalReference(t *testing.T) {
	c := NewConfigurator()

	cfg, err := c.Resolve("Topic 1, multiple choice, 10 questions, medium difficulty", []string{"Photosynthesis", "Glycolysis"})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Topic != "Photosynthesis" {
		t.Errorf("expected Photosynthesis, got %q", cfg.Topic)
	}
	if cfg.Type != models.QuizMultipleChoice {
		t.Errorf("expected multiple choice, got %q", cfg.Type)
	}
	if cfg.Length != 10 {
		t.Errorf("expected length 10, got %d", cfg.Length)
	}
	if cfg.Difficulty != models.DifficultyMedium {
		t.Errorf("expected medium difficulty, got %q", cfg.Difficulty)
	}
}

func TestResolveSubstringMatch(t *testing.T) {
	c := NewConfigurator()

	cfg, err := c.Resolve("I want a quiz on glycolysis", availableTopics)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Topic != "Glycolysis" {
		t.Errorf("expected Glycolysis, got %q", cfg.Topic)
	}
	if cfg.Length != DefaultQuizLength {
		t.Errorf("expected default length, got %d", cfg.Length)
	}
}

func TestResolveWordOverlap(t *testing.T) {
	c := NewConfigurator()

	cfg, err := c.Resolve("something about membrane biology please", availableTopics)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Topic != "Cell Membrane Transport" {
		t.Errorf("expected Cell Membrane Transport, got %q", cfg.Topic)
	}
}

func TestResolvePresets(t *testing.T) {
	c := NewConfigurator()

	tests := []struct {
		name      string
		utterance string
		length    int
	}{
		{"quick preset", "quick quiz on glycolysis", 5},
		{"standard preset", "standard quiz on glycolysis", 10},
		{"comprehensive preset", "comprehensive quiz on glycolysis", 15},
		{"preset overrides number", "quick quiz on glycolysis with 12 questions", 5},
		{"freeform number", "quiz on glycolysis, 7 questions", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := c.Resolve(tt.utterance, availableTopics)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.utterance, err)
			}
			if cfg.Length != tt.length {
				t.Errorf("Resolve(%q) length = %d, want %d", tt.utterance, cfg.Length, tt.length)
			}
		})
	}
}

func TestResolveUnknownTopic(t *testing.T) {
	c := NewConfigurator()

	_, err := c.Resolve("quiz me please", availableTopics)
	if err == nil {
		t.Fatal("expected a config error for unresolvable topic")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if len(cfgErr.Suggestions) == 0 || len(cfgErr.Suggestions) > 3 {
		t.Errorf("expected 1-3 suggestions, got %v", cfgErr.Suggestions)
	}
	if cfgErr.Suggestions[0] != "Photosynthesis" {
		t.Errorf("expected first available topic suggested, got %v", cfgErr.Suggestions)
	}
}

func TestResolveFlashcardFormat(t *testing.T) {
	c := NewConfigurator()

	cfg, err := c.Resolve("flashcard quiz on photosynthesis, hard", availableTopics)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Format != models.FormatFlashcard {
		t.Errorf("expected flashcard format, got %q", cfg.Format)
	}
	if cfg.Difficulty != models.DifficultyHard {
		t.Errorf("expected hard difficulty, got %q", cfg.Difficulty)
	}
}
