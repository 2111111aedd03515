// ABOUTME: Multi-query retrieval with deduplication and composite relevance scoring
// ABOUTME: Merges expanded-query results and ranks them for answer synthesis
package core

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/vectorstore"
)

const (
	// minQuestionLength short-circuits retrieval for degenerate questions.
	minQuestionLength = 5
	// minCandidateLength drops noise records during deduplication.
	minCandidateLength = 50
	// dedupePrefixLength is how much case-folded text identifies a duplicate.
	dedupePrefixLength = 100
	// fallbackThreshold triggers the content-word query when the primary
	// pass returns fewer candidates than this.
	fallbackThreshold = 2
)

// ScoreWeights tunes the composite relevance score.
type ScoreWeights struct {
	WordMatch       float64
	LengthBonus     float64
	LengthThreshold int
	Position        float64
}

// Retriever issues expanded queries against the vector store and ranks the
// merged results.
type Retriever struct {
	store           vectorstore.Store
	expander        *QueryExpander
	weights         ScoreWeights
	topK            int
	resultsPerQuery int
	verbose         bool
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store vectorstore.Store, cfg *config.Config) *Retriever {
	return &Retriever{
		store:    store,
		expander: NewQueryExpander(cfg.MaxQueryVariants),
		weights: ScoreWeights{
			WordMatch:       cfg.ScoreWordWeight,
			LengthBonus:     cfg.ScoreLengthBonus,
			LengthThreshold: cfg.ScoreLengthThreshold,
			Position:        cfg.ScorePositionWeight,
		},
		topK:            cfg.TopK,
		resultsPerQuery: cfg.ResultsPerQuery,
		verbose:         cfg.Verbose,
	}
}

// Retrieve returns the top-K ranked chunks for the question. An empty store
// or a question below the minimum length yields an empty result, not an
// error; the caller surfaces that as a "no content" answer.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]models.RankedResult, error) {
	if len(strings.TrimSpace(question)) < minQuestionLength {
		return nil, nil
	}

	count, err := r.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting stored chunks: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	perQuery := r.resultsPerQuery
	if perQuery > count {
		perQuery = count
	}

	candidates := r.search(ctx, r.expander.Expand(question), perQuery)

	// A near-empty primary pass gets one more try with a content-word query
	if len(candidates) < fallbackThreshold {
		if fallback := r.expander.FallbackQuery(question); fallback != "" {
			candidates = append(candidates, r.search(ctx, []string{fallback}, perQuery)...)
		}
	}

	return r.rank(question, candidates), nil
}

func (r *Retriever) search(ctx context.Context, queries []string, perQuery int) []models.RetrievalCandidate {
	var candidates []models.RetrievalCandidate
	for _, query := range queries {
		results, err := r.store.Query(ctx, query, perQuery)
		if err != nil {
			log.Printf("[RETRIEVE] Search failed for %q: %v", query, err)
			continue
		}
		for pos, res := range results {
			candidates = append(candidates, models.RetrievalCandidate{
				ChunkID:     res.ID,
				Content:     res.Content,
				Title:       res.Metadata["title"],
				Source:      res.Metadata["source"],
				Distance:    res.Distance,
				SourceQuery: query,
				Position:    pos,
				SetSize:     len(results),
			})
		}
	}
	return candidates
}

// rank deduplicates candidates by a case-folded content prefix, drops short
// noise records, scores the survivors, and returns the top K.
func (r *Retriever) rank(question string, candidates []models.RetrievalCandidate) []models.RankedResult {
	questionWords := ContentWords(question)

	seen := make(map[string]bool)
	var ranked []models.RankedResult
	for _, cand := range candidates {
		content := strings.TrimSpace(cand.Content)
		if len(content) < minCandidateLength {
			continue
		}
		key := dedupeKey(content)
		if seen[key] {
			continue
		}
		seen[key] = true

		ranked = append(ranked, models.RankedResult{
			ChunkID:  cand.ChunkID,
			Content:  cand.Content,
			Title:    cand.Title,
			Source:   cand.Source,
			Score:    r.score(questionWords, content, cand),
			Distance: cand.Distance,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > r.topK {
		ranked = ranked[:r.topK]
	}
	return ranked
}

// score is the composite relevance measure: one word-match unit per question
// content word present in the candidate, a bonus for substantial length, and
// a bonus proportional to how highly the store ranked the candidate in its
// originating result set.
func (r *Retriever) score(questionWords []string, content string, cand models.RetrievalCandidate) float64 {
	lower := strings.ToLower(content)

	var score float64
	for _, word := range questionWords {
		if strings.Contains(lower, word) {
			score += r.weights.WordMatch
		}
	}
	if len(content) > r.weights.LengthThreshold {
		score += r.weights.LengthBonus
	}
	if cand.SetSize > 0 {
		score += r.weights.Position * float64(cand.SetSize-cand.Position) / float64(cand.SetSize)
	}
	return score
}

func dedupeKey(content string) string {
	key := strings.ToLower(content)
	if len(key) > dedupePrefixLength {
		key = key[:runeStart(key, dedupePrefixLength)]
	}
	return strings.TrimSpace(key)
}
