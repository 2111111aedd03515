// ABOUTME: Content analysis for topic discovery across the knowledge base
// ABOUTME: Asks the LLM to extract topics, key concepts, and difficulty as JSON
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
)

// analysisContentBudget caps how much stored content goes into one analysis
// prompt.
const analysisContentBudget = 8000

const analyzerSystemPrompt = "You are an expert at analyzing educational content. Identify the topics, key concepts, and structure students need to master."

// ContentAnalyzer discovers quiz topics from stored content.
type ContentAnalyzer struct {
	completer llm.Completer
}

// NewContentAnalyzer creates an analyzer backed by the given completer.
func NewContentAnalyzer(completer llm.Completer) *ContentAnalyzer {
	return &ContentAnalyzer{completer: completer}
}

// Analyze extracts the subject area, main topics, and their key concepts
// from the given content chunks.
func (a *ContentAnalyzer) Analyze(ctx context.Context, chunks []string) (*models.ContentAnalysis, error) {
	if a.completer == nil {
		return nil, fmt.Errorf("content analysis requires a language model")
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to analyze")
	}

	response, err := a.completer.CompleteJSON(ctx, analyzerSystemPrompt, buildAnalysisPrompt(chunks))
	if err != nil {
		return nil, fmt.Errorf("analyzing content: %w", err)
	}

	var analysis models.ContentAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		return nil, fmt.Errorf("parsing analysis response: %w", err)
	}
	return &analysis, nil
}

func buildAnalysisPrompt(chunks []string) string {
	var content strings.Builder
	for _, chunk := range chunks {
		if content.Len() >= analysisContentBudget {
			break
		}
		if content.Len() > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(chunk)
	}
	combined := content.String()
	if len(combined) > analysisContentBudget {
		combined = combined[:analysisContentBudget]
	}

	return fmt.Sprintf(`Analyze this course content and identify:

1. SUBJECT AREA: What academic subject/field is this?
2. MAIN TOPICS: What are the 3-7 main topics covered in this material?
3. OVERALL DIFFICULTY: Basic, intermediate, or advanced level?

For each main topic, provide:
- Name of the topic as it would appear in course materials
- Brief description (1-2 sentences explaining what students learn)
- Key concepts within this topic (3-5 important terms students must know)
- Subtopics or specific areas covered
- Difficulty level (basic/intermediate/advanced)

Course content to analyze:
%s

Respond in this JSON format:
{
    "subject_area": "Biology",
    "overall_difficulty": "intermediate",
    "topics": [
        {
            "name": "Cell Structure and Function",
            "description": "Study of cellular components and how they work together",
            "key_concepts": ["prokaryotic cells", "eukaryotic cells", "organelles"],
            "subtopics": ["cell types", "organelle functions"],
            "difficulty_level": "intermediate"
        }
    ]
}`, combined)
}

// extractJSON pulls the outermost JSON object out of a response that may be
// wrapped in prose or code fences.
func extractJSON(response string) string {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return response
	}
	return response[start : end+1]
}
