// ABOUTME: Tiered answer synthesis: LLM call, templated extract, then apology
// ABOUTME: LLM failures degrade confidence instead of propagating errors
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/subjects"
)

const (
	// promptContentBudget caps how much chunk text goes into the LLM prompt.
	promptContentBudget = 1000
	// templateExtractBudget caps the quoted extract in the template tier.
	templateExtractBudget = 300
	// maxRelatedTopics bounds the suggestions appended to an answer.
	maxRelatedTopics = 4

	emptyAnswer = "No relevant information found in your uploaded materials. Please upload course content related to this topic."

	confidenceLLM      = 0.9
	confidenceTemplate = 0.7
	confidenceEmpty    = 0.0
)

// Synthesizer turns ranked retrieval results into a final answer.
type Synthesizer struct {
	completer llm.Completer
	subject   subjects.Subject
	verbose   bool
}

// NewSynthesizer creates a synthesizer. A nil completer disables the LLM
// tier, so every answer falls through to the template tier.
func NewSynthesizer(completer llm.Completer, subject subjects.Subject, verbose bool) *Synthesizer {
	return &Synthesizer{completer: completer, subject: subject, verbose: verbose}
}

// Synthesize produces an answer from the ranked results. It never returns an
// error: LLM failures fall through to the template tier and an empty result
// set yields the fixed no-content answer.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, results []models.RankedResult) models.Answer {
	if len(results) == 0 {
		return models.Answer{
			Text:       emptyAnswer,
			Confidence: confidenceEmpty,
			Sources:    []string{},
			Method:     models.MethodEmpty,
		}
	}

	sources := collectSources(results)

	if s.completer != nil {
		text, err := s.completer.Complete(ctx, s.subject.SystemPrompt(), buildAnswerPrompt(question, results))
		if err == nil && strings.TrimSpace(text) != "" {
			return models.Answer{
				Text:       strings.TrimSpace(text),
				Confidence: confidenceLLM,
				Sources:    sources,
				Method:     models.MethodLLM,
			}
		}
		if err != nil {
			log.Printf("[SYNTH] LLM tier failed, falling back to template: %v", err)
		}
	}

	return models.Answer{
		Text:       templateAnswer(results),
		Confidence: confidenceTemplate,
		Sources:    sources,
		Method:     models.MethodTemplate,
	}
}

// RelatedTopics suggests follow-up terms when the question names a known
// topic for the active subject.
func (s *Synthesizer) RelatedTopics(question string) []string {
	lower := strings.ToLower(question)
	var suggestions []string
	for topic, related := range s.subject.TopicKeywords() {
		if strings.Contains(lower, topic) {
			suggestions = append(suggestions, related...)
		}
	}
	if len(suggestions) > maxRelatedTopics {
		suggestions = suggestions[:maxRelatedTopics]
	}
	return suggestions
}

func buildAnswerPrompt(question string, results []models.RankedResult) string {
	var content strings.Builder
	for _, res := range results {
		if content.Len() >= promptContentBudget {
			break
		}
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(strings.TrimSpace(res.Content))
	}
	combined := content.String()
	if len(combined) > promptContentBudget {
		combined = combined[:runeStart(combined, promptContentBudget)]
	}

	return fmt.Sprintf(`Based on this course content, provide a direct answer to: %q

Course Content:
%s

Requirements:
- Answer the question directly and concisely
- Use ONLY the provided course content
- Keep response under 200 words
- Focus on key facts, not lengthy explanations
- If the content mentions specific levels or categories, list them clearly`, question, combined)
}

func templateAnswer(results []models.RankedResult) string {
	extract := strings.TrimSpace(results[0].Content)
	if len(extract) > templateExtractBudget {
		extract = extract[:runeStart(extract, templateExtractBudget)] + "..."
	}
	return "Based on your course materials:\n\n" + extract
}

// collectSources returns the chunk identifiers of the used results in
// selection order, duplicates removed.
func collectSources(results []models.RankedResult) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, res := range results {
		source := res.ChunkID
		if source == "" {
			source = res.Title
		}
		if source == "" || seen[source] {
			continue
		}
		seen[source] = true
		sources = append(sources, source)
	}
	return sources
}
