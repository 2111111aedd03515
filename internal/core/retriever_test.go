// ABOUTME: Tests for retrieval, deduplication, and composite scoring
// ABOUTME: Uses the in-memory vector store as the backing collaborator
package core

import (
	"context"
	"strings"
	"testing"

	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/vectorstore/memory"
)

func retrieverConfig() *config.Config {
	return &config.Config{
		ChunkMaxSize:         800,
		ChunkMinSize:         20,
		ChunkOverlap:         100,
		TopK:                 3,
		ResultsPerQuery:      3,
		MaxQueryVariants:     4,
		ScoreWordWeight:      1.0,
		ScoreLengthBonus:     0.5,
		ScoreLengthThreshold: 200,
		ScorePositionWeight:  1.0,
	}
}

func seedStore(t *testing.T, contents map[string]string) *memory.Store {
	t.Helper()
	store := memory.New()
	var chunks []models.ContentChunk
	for id, content := range contents {
		chunks = append(chunks, models.ContentChunk{ID: id, Content: content})
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return store
}

func TestRetrieveShortQuestion(t *testing.T) {
	store := seedStore(t, map[string]string{
		"c1": strings.Repeat("glycolysis splits glucose into pyruvate molecules ", 3),
	})
	r := NewRetriever(store, retrieverConfig())

	results, err := r.Retrieve(context.Background(), "atp?")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result for short question, got %d", len(results))
	}
}

func TestRetrieveEmptyStore(t *testing.T) {
	r := NewRetriever(memory.New(), retrieverConfig())

	results, err := r.Retrieve(context.Background(), "what is glycolysis and how does it work")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result from empty store, got %d", len(results))
	}
}

func TestRetrieveRanksAndBounds(t *testing.T) {
	long := strings.Repeat("glycolysis converts glucose to pyruvate producing ATP and NADH in the cytoplasm. ", 4)
	store := seedStore(t, map[string]string{
		"c1": long,
		"c2": "Glycolysis is the metabolic pathway that breaks down glucose in the cytoplasm.",
		"c3": "The Golgi apparatus modifies and packages proteins for secretion from the cell.",
		"c4": "Membrane transport moves molecules across the phospholipid bilayer of cells.",
	})
	r := NewRetriever(store, retrieverConfig())

	results, err := r.Retrieve(context.Background(), "how does glycolysis break down glucose")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected ranked results")
	}
	if len(results) > 3 {
		t.Errorf("expected at most 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not ordered by score: %f before %f", results[i-1].Score, results[i].Score)
		}
	}
	// The chunk matching the most question words ranks first
	if results[0].ChunkID != "c2" {
		t.Errorf("expected c2 ranked first, got %s", results[0].ChunkID)
	}
}

func TestRetrieveDeduplicates(t *testing.T) {
	shared := strings.Repeat("enzymes lower activation energy in metabolic reactions throughout the cell. ", 2)
	store := seedStore(t, map[string]string{
		"c1": shared,
		"c2": shared + "They bind substrates at the active site.",
	})
	r := NewRetriever(store, retrieverConfig())

	results, err := r.Retrieve(context.Background(), "how do enzymes affect activation energy")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected duplicates with shared 100-char prefix collapsed to 1, got %d", len(results))
	}
}

func TestRetrieveDropsShortRecords(t *testing.T) {
	store := seedStore(t, map[string]string{
		"c1": "mitochondria make ATP",
	})
	r := NewRetriever(store, retrieverConfig())

	results, err := r.Retrieve(context.Background(), "where do mitochondria make ATP in the cell")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected records under 50 chars discarded, got %d", len(results))
	}
}

func TestScoreComposite(t *testing.T) {
	r := NewRetriever(memory.New(), retrieverConfig())

	words := []string{"glycolysis", "glucose"}
	short := "glycolysis breaks down glucose"
	cand := models.RetrievalCandidate{Position: 0, SetSize: 2}

	// 2 word matches + full position bonus, no length bonus
	got := r.score(words, short, cand)
	if got != 3.0 {
		t.Errorf("expected score 3.0, got %f", got)
	}

	long := short + strings.Repeat(" and yields pyruvate with net ATP gain", 6)
	got = r.score(words, long, cand)
	if got != 3.5 {
		t.Errorf("expected score 3.5 with length bonus, got %f", got)
	}

	// Last position in its result set earns the smallest position bonus
	last := models.RetrievalCandidate{Position: 1, SetSize: 2}
	got = r.score(words, short, last)
	if got != 2.5 {
		t.Errorf("expected score 2.5 for last position, got %f", got)
	}
}
