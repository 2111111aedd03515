// ABOUTME: Retrieval types passed between the vector store, ranker, and synthesizer
// ABOUTME: Candidates are per-search ephemera; ranked results are the scored top-K
package models

// RetrievalCandidate is one raw hit from a single similarity search.
// Position and SetSize describe where the hit sat in its originating
// result set so the ranker can reward store-side ordering.
type RetrievalCandidate struct {
	ChunkID     string
	Content     string
	Title       string
	Source      string
	Distance    float64
	SourceQuery string
	Position    int
	SetSize     int
}

// RankedResult is a deduplicated, composite-scored candidate.
type RankedResult struct {
	ChunkID  string  `json:"chunk_id"`
	Content  string  `json:"content"`
	Title    string  `json:"title"`
	Source   string  `json:"source"`
	Score    float64 `json:"score"`
	Distance float64 `json:"distance"`
}

// Answer is the synthesized response to a question.
type Answer struct {
	Text       string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Method     string   `json:"method"`
}

// Synthesis methods, in fallback order.
const (
	MethodLLM      = "llm"
	MethodTemplate = "template"
	MethodEmpty    = "empty"
)
