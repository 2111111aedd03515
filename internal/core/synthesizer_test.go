// ABOUTME: Tests for the tiered answer synthesis fallback chain
// ABOUTME: Forces LLM failures to verify template and empty tiers
package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/subjects"
)

func rankedFixture() []models.RankedResult {
	return []models.RankedResult{
		{ChunkID: "c1", Content: "Glycolysis is the first stage of cellular respiration and occurs in the cytoplasm.", Score: 3.5},
		{ChunkID: "c2", Content: "It splits one glucose molecule into two pyruvate molecules with a net gain of two ATP.", Score: 2.0},
		{ChunkID: "c1", Content: "duplicate source entry", Score: 1.0},
	}
}

func TestSynthesizeLLMTier(t *testing.T) {
	mock := llm.NewMockCompleter("Glycolysis splits glucose into two pyruvate molecules.")
	s := NewSynthesizer(mock, subjects.Biology{}, false)

	answer := s.Synthesize(context.Background(), "What is glycolysis?", rankedFixture())

	if answer.Method != models.MethodLLM {
		t.Errorf("expected llm method, got %q", answer.Method)
	}
	if answer.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", answer.Confidence)
	}
	if len(answer.Sources) != 2 {
		t.Errorf("expected 2 deduplicated sources, got %v", answer.Sources)
	}
	if answer.Sources[0] != "c1" || answer.Sources[1] != "c2" {
		t.Errorf("sources out of selection order: %v", answer.Sources)
	}
	if len(mock.UserPrompts) != 1 || !strings.Contains(mock.UserPrompts[0], "Glycolysis is the first stage") {
		t.Error("expected chunk content in the LLM prompt")
	}
}

func TestSynthesizeTemplateTierOnFailure(t *testing.T) {
	mock := &llm.MockCompleter{Err: errors.New("rate limited")}
	s := NewSynthesizer(mock, subjects.Generic{}, false)

	answer := s.Synthesize(context.Background(), "What is glycolysis?", rankedFixture())

	if answer.Method != models.MethodTemplate {
		t.Errorf("expected template method, got %q", answer.Method)
	}
	if answer.Confidence < 0.5 || answer.Confidence > 0.8 {
		t.Errorf("template confidence %f outside [0.5, 0.8]", answer.Confidence)
	}
	if !strings.HasPrefix(answer.Text, "Based on your course materials:") {
		t.Errorf("expected attribution prefix, got %q", answer.Text)
	}
	if !strings.Contains(answer.Text, "Glycolysis is the first stage") {
		t.Errorf("expected top result quoted, got %q", answer.Text)
	}
	if len(answer.Sources) == 0 {
		t.Error("template tier should still report sources")
	}
}

func TestSynthesizeEmptyTier(t *testing.T) {
	s := NewSynthesizer(llm.NewMockCompleter("unused"), subjects.Generic{}, false)

	answer := s.Synthesize(context.Background(), "What is glycolysis?", nil)

	if answer.Method != models.MethodEmpty {
		t.Errorf("expected empty method, got %q", answer.Method)
	}
	if answer.Confidence > 0.1 {
		t.Errorf("expected confidence at most 0.1, got %f", answer.Confidence)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("expected no sources, got %v", answer.Sources)
	}
	if answer.Text == "" {
		t.Error("expected fixed no-content message")
	}
}

func TestSynthesizeNilCompleterUsesTemplate(t *testing.T) {
	s := NewSynthesizer(nil, subjects.Generic{}, false)

	answer := s.Synthesize(context.Background(), "What is glycolysis?", rankedFixture())
	if answer.Method != models.MethodTemplate {
		t.Errorf("expected template method without a completer, got %q", answer.Method)
	}
}

func TestTemplateAnswerTruncates(t *testing.T) {
	long := []models.RankedResult{{ChunkID: "c1", Content: strings.Repeat("x", 500)}}
	text := templateAnswer(long)
	if !strings.HasSuffix(text, "...") {
		t.Error("expected truncation ellipsis")
	}
	if len(text) > len("Based on your course materials:\n\n")+303 {
		t.Errorf("template answer too long: %d chars", len(text))
	}
}

func TestRelatedTopics(t *testing.T) {
	s := NewSynthesizer(nil, subjects.Biology{}, false)

	topics := s.RelatedTopics("Tell me about photosynthesis")
	if len(topics) == 0 {
		t.Fatal("expected related topic suggestions")
	}
	if len(topics) > 4 {
		t.Errorf("expected at most 4 suggestions, got %d", len(topics))
	}

	if got := s.RelatedTopics("completely unrelated text"); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}
