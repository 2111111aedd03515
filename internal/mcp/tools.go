// ABOUTME: MCP tool definitions and registration for the study engine server
// ABOUTME: Defines JSON schemas for the ingestion, Q&A, and quiz tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cucobaby/studyengine/internal/assistant"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *assistant.Assistant) *Handlers {
	handlers := &Handlers{engine: engine}

	// 1. ingest_content - Add course material to the knowledge base
	server.AddTool(mcp.Tool{
		Name:        "ingest_content",
		Description: "Ingest course material into the knowledge base. The text is chunked and stored for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Title of the material (e.g., lecture or chapter name)",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Raw text content to ingest",
				},
			},
			Required: []string{"title", "text"},
		},
	}, handlers.IngestContent)

	// 2. ask_question - Answer a question from the stored material
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using the ingested course material, with sources and a confidence score.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 3. list_quiz_topics - List topics with enough content for a quiz
	server.AddTool(mcp.Tool{
		Name:        "list_quiz_topics",
		Description: "List the topics discovered in the ingested material that have enough key concepts for quiz generation.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListQuizTopics)

	// 4. start_quiz - Open a quiz session from a request utterance
	server.AddTool(mcp.Tool{
		Name:        "start_quiz",
		Description: "Detect a quiz request in the utterance and open a quiz session awaiting configuration.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"utterance": map[string]interface{}{
					"type":        "string",
					"description": "The quiz request, e.g. 'quiz me on glycolysis'",
				},
			},
			Required: []string{"utterance"},
		},
	}, handlers.StartQuiz)

	// 5. configure_quiz - Resolve configuration and generate questions
	server.AddTool(mcp.Tool{
		Name:        "configure_quiz",
		Description: "Resolve a configuration utterance (topic, type, length, difficulty, format) for an open session and generate its questions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id returned by start_quiz",
				},
				"utterance": map[string]interface{}{
					"type":        "string",
					"description": "Configuration, e.g. 'topic 1, multiple choice, 10 questions'",
				},
			},
			Required: []string{"session_id", "utterance"},
		},
	}, handlers.ConfigureQuiz)

	// 6. answer_quiz - Submit one quiz turn
	server.AddTool(mcp.Tool{
		Name:        "answer_quiz",
		Description: "Submit an answer, 'skip', or 'end quiz' for the current question of a session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id of the quiz in progress",
				},
				"turn_index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based index of the question being answered, as returned with the question",
				},
				"answer": map[string]interface{}{
					"type":        "string",
					"description": "The answer text, 'skip', or 'end quiz'",
				},
			},
			Required: []string{"session_id", "turn_index", "answer"},
		},
	}, handlers.AnswerQuiz)

	// 7. get_analytics - Report accumulated quiz performance
	server.AddTool(mcp.Tool{
		Name:        "get_analytics",
		Description: "Get accumulated quiz analytics: totals, overall accuracy, and per-topic performance.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetAnalytics)

	return handlers
}
