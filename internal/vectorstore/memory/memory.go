// ABOUTME: In-memory vector store using term-frequency cosine similarity
// ABOUTME: Default backend for local use and tests; no external services required
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/vectorstore"
)

// Store is an in-memory vectorstore.Store built on term-frequency vectors
// and cosine similarity. Distance is 1 - cosine, so identical texts have
// distance 0.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]document
	order []string
}

type document struct {
	content  string
	metadata map[string]string
	vector   map[string]float64
	norm     float64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]document)}
}

// Add stores chunks, replacing any with matching IDs.
func (s *Store) Add(ctx context.Context, chunks []models.ContentChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		vec := vectorize(chunk.Content)
		metadata := map[string]string{
			"document_id":   chunk.DocumentID,
			"section_title": chunk.SectionTitle,
			"section_type":  string(chunk.SectionType),
		}
		for k, v := range chunk.Metadata {
			metadata[k] = v
		}
		if _, exists := s.docs[chunk.ID]; !exists {
			s.order = append(s.order, chunk.ID)
		}
		s.docs[chunk.ID] = document{
			content:  chunk.Content,
			metadata: metadata,
			vector:   vec,
			norm:     norm(vec),
		}
	}
	return nil
}

// Query returns the limit most similar chunks, closest first.
func (s *Store) Query(ctx context.Context, text string, limit int) ([]vectorstore.QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || len(s.docs) == 0 {
		return []vectorstore.QueryResult{}, nil
	}

	qVec := vectorize(text)
	qNorm := norm(qVec)

	results := make([]vectorstore.QueryResult, 0, len(s.docs))
	for _, id := range s.order {
		doc := s.docs[id]
		sim := cosine(qVec, qNorm, doc.vector, doc.norm)
		results = append(results, vectorstore.QueryResult{
			ID:       id,
			Content:  doc.content,
			Metadata: doc.metadata,
			Distance: 1 - sim,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Count reports the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Clear removes all chunks.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]document)
	s.order = nil
	return nil
}

func vectorize(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]{}")
		if word == "" {
			continue
		}
		vec[word]++
	}
	return vec
}

func norm(vec map[string]float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func cosine(a map[string]float64, aNorm float64, b map[string]float64, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	// Iterate over the smaller vector
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for word, av := range a {
		if bv, ok := b[word]; ok {
			dot += av * bv
		}
	}
	return dot / (aNorm * bNorm)
}
