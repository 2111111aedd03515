// ABOUTME: Query expansion to widen recall before vector search
// ABOUTME: Table-driven topic expansions plus a content-word fallback query
package core

import "strings"

// maxQueryVariants bounds external-call fan-out per question.
const maxQueryVariants = 4

// topicExpansion appends canned queries when a question touches a known
// topic pattern with enumerable sub-levels.
type topicExpansion struct {
	triggers []string
	queries  []string
}

var topicExpansions = []topicExpansion{
	{
		triggers: []string{"protein", "structure", "level"},
		queries: []string{
			"primary secondary tertiary quaternary structure",
			"protein folding levels",
			"amino acid structure",
		},
	},
}

// stopWords are interrogative and filler words excluded from content-word
// extraction.
var stopWords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true, "whose": true,
	"who": true, "whom": true, "why": true, "how": true, "does": true,
	"do": true, "did": true, "is": true, "are": true, "was": true,
	"were": true, "the": true, "a": true, "an": true, "of": true,
	"in": true, "on": true, "to": true, "for": true, "with": true,
	"about": true, "tell": true, "me": true, "explain": true,
	"describe": true, "can": true, "you": true, "please": true,
}

// QueryExpander derives alternate search strings from a question.
type QueryExpander struct {
	maxVariants int
}

// NewQueryExpander creates an expander with the given variant cap. Caps
// below 1 fall back to the default.
func NewQueryExpander(maxVariants int) *QueryExpander {
	if maxVariants < 1 {
		maxVariants = maxQueryVariants
	}
	return &QueryExpander{maxVariants: maxVariants}
}

// Expand returns search queries for the question, the original question
// always first. Trigger terms for known topic patterns append canned
// sub-level queries, capped at the variant limit.
func (e *QueryExpander) Expand(question string) []string {
	queries := []string{question}
	lower := strings.ToLower(question)

	for _, exp := range topicExpansions {
		if !containsAny(lower, exp.triggers) {
			continue
		}
		for _, q := range exp.queries {
			if len(queries) >= e.maxVariants {
				return queries
			}
			queries = append(queries, q)
		}
	}
	return queries
}

// FallbackQuery extracts content words from the question into a single
// derived query, used when the primary search comes back nearly empty.
// Returns "" when the question has no usable content words.
func (e *QueryExpander) FallbackQuery(question string) string {
	return strings.Join(ContentWords(question), " ")
}

// ContentWords returns the question's substantive terms: words longer than
// three characters that are not interrogative or filler words.
func ContentWords(question string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if len(word) <= 3 || stopWords[word] {
			continue
		}
		words = append(words, word)
	}
	return words
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
