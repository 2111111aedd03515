// ABOUTME: Vector store port for chunk storage and similarity search
// ABOUTME: Defines the interface the retrieval pipeline depends on
package vectorstore

import (
	"context"

	"github.com/cucobaby/studyengine/internal/models"
)

// QueryResult is one chunk returned by a similarity search. Distance is the
// store's dissimilarity measure; lower means a closer match.
type QueryResult struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Distance float64           `json:"distance"`
}

// Store is the vector store used for chunk persistence and retrieval.
// Implementations must be safe for concurrent use.
type Store interface {
	// Add stores chunks with their metadata. Adding a chunk with an
	// existing ID replaces the stored copy.
	Add(ctx context.Context, chunks []models.ContentChunk) error

	// Query returns up to limit chunks most similar to the text, closest
	// first. An empty store returns an empty slice, not an error.
	Query(ctx context.Context, text string, limit int) ([]QueryResult, error)

	// Count reports how many chunks are stored.
	Count(ctx context.Context) (int, error)

	// Clear removes all stored chunks.
	Clear(ctx context.Context) error
}
