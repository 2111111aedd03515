// ABOUTME: ContentChunk represents a bounded slice of ingested course material
// ABOUTME: Chunks are created once at ingestion and stored in the vector store
package models

// SectionType classifies the study-guide section a chunk was cut from
type SectionType string

const (
	SectionLearningObjectives SectionType = "learning_objectives"
	SectionVocabulary         SectionType = "vocabulary"
	SectionMechanisms         SectionType = "mechanisms"
	SectionExperiments        SectionType = "experiments"
	SectionApplications       SectionType = "applications"
	SectionRegulation         SectionType = "regulation"
	SectionGeneral            SectionType = "general"
)

// ContentChunk is a bounded unit of source text stored and retrieved atomically.
// Immutable after ingestion; removed only by an explicit knowledge-base clear.
type ContentChunk struct {
	ID           string            `json:"id"`
	DocumentID   string            `json:"document_id"`
	Content      string            `json:"content"`
	Index        int               `json:"chunk_index"`
	SectionTitle string            `json:"section_title,omitempty"`
	SectionType  SectionType       `json:"section_type,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}
