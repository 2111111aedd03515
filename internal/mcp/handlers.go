// ABOUTME: MCP tool handler implementations for the study engine server
// ABOUTME: Maps tool calls onto the assistant facade with structured JSON results
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cucobaby/studyengine/internal/assistant"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/quiz"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *assistant.Assistant
}

// IngestContent handles the ingest_content tool
func (h *Handlers) IngestContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	ids, err := h.engine.Ingest(ctx, title, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"chunks_stored": len(ids),
		"chunk_ids":     ids,
		"subject":       h.engine.Subject().Name(),
	})
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, related, err := h.engine.Answer(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"answer":         answer.Text,
		"confidence":     answer.Confidence,
		"sources":        answer.Sources,
		"method":         answer.Method,
		"related_topics": related,
	})
}

// ListQuizTopics handles the list_quiz_topics tool
func (h *Handlers) ListQuizTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topics, err := h.engine.AvailableTopics(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("topic discovery failed: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"topics": topics})
}

// StartQuiz handles the start_quiz tool
func (h *Handlers) StartQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	utterance, err := request.RequireString("utterance")
	if err != nil {
		return mcp.NewToolResultError("utterance argument is required and must be a string"), nil
	}

	intent, session, err := h.engine.StartQuiz(ctx, utterance)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("starting quiz failed: %v", err)), nil
	}

	result := map[string]interface{}{
		"is_quiz_request": intent.IsQuizRequest,
		"confidence":      string(intent.Confidence),
	}
	if session != nil {
		result["session_id"] = session.ID
		result["available_topics"] = session.AvailableTopics
		if intent.Parameters.Topic != "" {
			result["requested_topic"] = intent.Parameters.Topic
		}
	}
	return jsonResult(result)
}

// ConfigureQuiz handles the configure_quiz tool
func (h *Handlers) ConfigureQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	utterance, err := request.RequireString("utterance")
	if err != nil {
		return mcp.NewToolResultError("utterance argument is required and must be a string"), nil
	}

	session, err := h.engine.ConfigureQuiz(ctx, sessionID, utterance)
	if err != nil {
		var cfgErr *quiz.ConfigError
		if errors.As(err, &cfgErr) {
			return jsonResult(map[string]interface{}{
				"resolved":    false,
				"reason":      cfgErr.Reason,
				"suggestions": cfgErr.Suggestions,
			})
		}
		return mcp.NewToolResultError(fmt.Sprintf("configuration failed: %v", err)), nil
	}

	first, err := session.CurrentQuestion()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading first question: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"resolved":       true,
		"session_id":     session.ID,
		"topic":          session.Config.Topic,
		"quiz_type":      string(session.Config.Type),
		"quiz_format":    string(session.Config.Format),
		"length":         len(session.Questions),
		"difficulty":     string(session.Config.Difficulty),
		"first_question": presentQuestion(first, session.Current, session.Config.Format == models.FormatFlashcard),
	})
}

// AnswerQuiz handles the answer_quiz tool
func (h *Handlers) AnswerQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	answer, err := request.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError("answer argument is required and must be a string"), nil
	}
	turnIndex := request.GetInt("turn_index", -1)
	if turnIndex < 0 {
		return mcp.NewToolResultError("turn_index argument is required and must be a non-negative integer"), nil
	}

	result, err := h.engine.SubmitAnswer(ctx, sessionID, turnIndex, answer)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveSession) {
			return mcp.NewToolResultError("no active quiz session with that id"), nil
		}
		if errors.Is(err, quiz.ErrTurnMismatch) {
			return mcp.NewToolResultError(fmt.Sprintf("stale turn: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("answer submission failed: %v", err)), nil
	}

	payload := map[string]interface{}{
		"correct":        result.Correct,
		"skipped":        result.Skipped,
		"correct_answer": result.CorrectAnswer,
		"explanation":    result.Explanation,
		"feedback":       result.Feedback,
		"score":          result.Score,
		"done":           result.Done,
	}
	if result.Summary != nil {
		payload["summary"] = map[string]interface{}{
			"score":           result.Summary.Score,
			"total_questions": result.Summary.TotalQuestions,
			"percentage":      result.Summary.Percentage,
			"duration":        result.Summary.Duration.String(),
			"ended_early":     result.Summary.EndedEarly,
			"weak_topics":     result.Summary.WeakTopics,
		}
	} else if !result.Done {
		// Surface the next question so the client can keep going
		if session, err := h.engine.SessionByID(sessionID); err == nil {
			if next, err := session.CurrentQuestion(); err == nil {
				payload["next_question"] = presentQuestion(next, session.Current, session.Config.Format == models.FormatFlashcard)
			}
		}
	}
	return jsonResult(payload)
}

// GetAnalytics handles the get_analytics tool
func (h *Handlers) GetAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agg := h.engine.Analytics()
	return jsonResult(map[string]interface{}{
		"total_quizzes":            agg.TotalSessions,
		"total_questions_answered": agg.TotalQuestions,
		"overall_accuracy":         agg.OverallAccuracy(),
		"topic_performance":        agg.ByTopic,
	})
}

// presentQuestion shapes a question for the client, carrying the turn index
// the client must echo back with its answer. Flashcard format hides the
// options so the answer side stays unseen until revealed.
func presentQuestion(q models.QuizQuestion, turnIndex int, flashcard bool) map[string]interface{} {
	out := map[string]interface{}{
		"id":         q.ID,
		"type":       string(q.Type),
		"question":   q.Prompt,
		"turn_index": turnIndex,
	}
	if len(q.Options) > 0 && !flashcard {
		out["options"] = q.Options
	}
	return out
}

func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
