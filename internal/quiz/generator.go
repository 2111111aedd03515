// ABOUTME: LLM-backed quiz question generation
// ABOUTME: Builds per-question JSON prompts and tolerates individual failures
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
)

const generatorSystemPrompt = "You are an expert educational content creator. Generate high-quality quiz questions with detailed explanations."

const feedbackSystemPrompt = "You are a helpful tutor providing constructive feedback to students."

// Generator produces quiz questions for a resolved configuration.
type Generator struct {
	completer llm.Completer
	verbose   bool
}

// NewGenerator creates a generator backed by the given completer.
func NewGenerator(completer llm.Completer, verbose bool) *Generator {
	return &Generator{completer: completer, verbose: verbose}
}

// questionPayload is the JSON shape the LLM is asked to produce.
type questionPayload struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
	Explanation   string   `json:"explanation"`
}

// Generate creates questions for the configuration. Individual generation
// failures are logged and skipped; if every question fails, the whole call
// fails with ErrQuestionGeneration so configuration aborts with an error
// rather than an empty quiz.
func (g *Generator) Generate(ctx context.Context, cfg models.QuizConfig, sourceContent string) ([]models.QuizQuestion, error) {
	if g.completer == nil {
		return nil, fmt.Errorf("question generation requires a language model")
	}

	types := questionTypes(cfg.Type, cfg.Length)
	questions := make([]models.QuizQuestion, 0, cfg.Length)
	for i, qType := range types {
		question, err := g.generateOne(ctx, cfg, qType, sourceContent)
		if err != nil {
			log.Printf("[QUIZ] Generating question %d/%d failed: %v", i+1, cfg.Length, err)
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w for topic %q", ErrQuestionGeneration, cfg.Topic)
	}
	return questions, nil
}

// questionTypes expands a quiz type into a per-question plan. Mixed quizzes
// alternate between multiple choice and fill-in-the-blank.
func questionTypes(quizType models.QuizType, length int) []models.QuizType {
	types := make([]models.QuizType, length)
	for i := range types {
		switch quizType {
		case models.QuizMixed:
			if i%2 == 0 {
				types[i] = models.QuizMultipleChoice
			} else {
				types[i] = models.QuizFillInBlank
			}
		default:
			types[i] = quizType
		}
	}
	return types
}

func (g *Generator) generateOne(ctx context.Context, cfg models.QuizConfig, qType models.QuizType, sourceContent string) (models.QuizQuestion, error) {
	response, err := g.completer.CompleteJSON(ctx, generatorSystemPrompt, buildQuestionPrompt(cfg, qType, sourceContent))
	if err != nil {
		return models.QuizQuestion{}, err
	}

	var payload questionPayload
	if err := json.Unmarshal([]byte(extractJSONObject(response)), &payload); err != nil {
		return models.QuizQuestion{}, fmt.Errorf("parsing question response: %w", err)
	}
	if payload.Question == "" || payload.CorrectAnswer == "" {
		return models.QuizQuestion{}, fmt.Errorf("incomplete question payload")
	}
	if qType == models.QuizMultipleChoice && len(payload.Options) < 2 {
		return models.QuizQuestion{}, fmt.Errorf("multiple choice question missing options")
	}

	return models.QuizQuestion{
		ID:            uuid.New().String(),
		Type:          qType,
		Prompt:        payload.Question,
		CorrectAnswer: payload.CorrectAnswer,
		Options:       payload.Options,
		Explanation:   payload.Explanation,
		Topic:         cfg.Topic,
		Difficulty:    cfg.Difficulty,
		CreatedAt:     time.Now(),
	}, nil
}

// Feedback writes tutoring feedback for a wrong answer. Failures fall back
// to the question's stored explanation so a turn always gets feedback.
func (g *Generator) Feedback(ctx context.Context, question models.QuizQuestion, userAnswer string) string {
	if g.completer == nil {
		return question.Explanation
	}

	prompt := fmt.Sprintf(`The student answered %q to the question: %q
The correct answer is: %q

Provide specific feedback explaining:
1. Why their answer is incorrect
2. What the correct concept is
3. Any relevance their answer might have

Be encouraging but educational. Keep it concise (2-3 sentences).`,
		userAnswer, question.Prompt, question.CorrectAnswer)

	response, err := g.completer.Complete(ctx, feedbackSystemPrompt, prompt)
	if err != nil {
		if g.verbose {
			log.Printf("[QUIZ] Generating feedback failed: %v", err)
		}
		return question.Explanation
	}
	return strings.TrimSpace(response)
}

func buildQuestionPrompt(cfg models.QuizConfig, qType models.QuizType, sourceContent string) string {
	var b strings.Builder

	if qType == models.QuizMultipleChoice {
		fmt.Fprintf(&b, `Create a %s difficulty multiple choice question about: %s

Format your response as JSON:
{
    "question": "Your question here",
    "correct_answer": "A",
    "options": [
        "A) Correct answer",
        "B) Wrong answer 1",
        "C) Wrong answer 2",
        "D) Wrong answer 3"
    ],
    "explanation": "Detailed explanation of why the correct answer is right and why the others are wrong"
}

Make sure the question is educational and the explanation is thorough.`, cfg.Difficulty, cfg.Topic)
	} else {
		fmt.Fprintf(&b, `Create a %s difficulty fill-in-the-blank question about: %s

Format your response as JSON:
{
    "question": "Your question with a _____ blank to fill",
    "correct_answer": "the correct word/phrase",
    "explanation": "Detailed explanation of the answer and why it's important"
}

Make the blank meaningful and educational.`, cfg.Difficulty, cfg.Topic)
	}

	if sourceContent != "" {
		fmt.Fprintf(&b, "\n\nBase the question on this course content:\n%s", sourceContent)
	}
	return b.String()
}

// extractJSONObject pulls the outermost JSON object out of a response that
// may be wrapped in prose or code fences.
func extractJSONObject(response string) string {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return response
	}
	return response[start : end+1]
}
