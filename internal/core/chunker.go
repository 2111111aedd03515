// ABOUTME: Text chunking for ingestion into the vector store
// ABOUTME: Paragraph-greedy splitting for documents, boundary-aware windows for raw uploads
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/models"
)

// Chunker splits raw text into bounded chunks for storage and retrieval.
type Chunker struct {
	maxSize int
	minSize int
	overlap int
}

// NewChunker creates a chunker from configuration.
func NewChunker(cfg *config.Config) *Chunker {
	return &Chunker{
		maxSize: cfg.ChunkMaxSize,
		minSize: cfg.ChunkMinSize,
		overlap: cfg.ChunkOverlap,
	}
}

// ChunkDocument splits structured document text into chunks. The text is
// first divided into sections on "## " headers, then each section is split
// on paragraph boundaries, greedily packing paragraphs up to the size limit.
// A paragraph longer than the limit is emitted whole rather than cut
// mid-sentence. Chunks at or below the minimum size are dropped.
func (c *Chunker) ChunkDocument(documentID, text string, metadata map[string]string) []models.ContentChunk {
	var chunks []models.ContentChunk
	index := 0

	for _, section := range extractSections(text) {
		for _, piece := range c.packParagraphs(section.content) {
			if len(piece) <= c.minSize {
				continue
			}
			chunks = append(chunks, models.ContentChunk{
				ID:           uuid.New().String(),
				DocumentID:   documentID,
				Content:      piece,
				Index:        index,
				SectionTitle: section.title,
				SectionType:  section.sectionType,
				Metadata:     metadata,
			})
			index++
		}
	}

	return chunks
}

// ChunkWindow splits unstructured text by scanning fixed-size windows and
// pulling the cut point back to the nearest sentence or line boundary in the
// back half of the window. Consecutive windows overlap so context spans each
// boundary. Pieces at or below the minimum size are dropped.
func (c *Chunker) ChunkWindow(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.maxSize {
		return []string{text}
	}

	var pieces []string
	start := 0
	for start < len(text) {
		end := start + c.maxSize
		if end >= len(text) {
			pieces = append(pieces, text[start:])
			break
		}
		end = runeStart(text, end)

		// Pull the cut back to a sentence or line boundary, but only if
		// one exists past the window's midpoint
		window := text[start:end]
		boundary := strings.LastIndexByte(window, '.')
		if nl := strings.LastIndexByte(window, '\n'); nl > boundary {
			boundary = nl
		}
		if boundary > c.maxSize/2 {
			end = start + boundary + 1
		}

		pieces = append(pieces, text[start:end])

		// Retreat by the overlap, but never move backwards: a boundary cut
		// shorter than the overlap would otherwise rescan the same text or
		// run the start index negative
		next := end - c.overlap
		if next > start {
			next = runeStart(text, next)
		}
		if next <= start {
			next = end
		}
		start = next
	}

	kept := pieces[:0]
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if len(piece) > c.minSize {
			kept = append(kept, piece)
		}
	}
	return kept
}

func (c *Chunker) packParagraphs(text string) []string {
	paragraphs := splitParagraphs(text)
	var out []string
	var current string

	for _, paragraph := range paragraphs {
		// +2 accounts for the "\n\n" joiner between packed paragraphs
		if current != "" && len(current)+2+len(paragraph) > c.maxSize {
			out = append(out, current)
			current = paragraph
			continue
		}
		if current == "" {
			current = paragraph
		} else {
			current += "\n\n" + paragraph
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// runeStart backs a byte index up to the start of the rune it falls inside,
// so slicing at it never splits a multi-byte character.
func runeStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type section struct {
	title       string
	content     string
	sectionType models.SectionType
}

// extractSections splits markdown-style text on "## " headers. Subsection
// headers ("### ") stay inside their parent section. Text before the first
// header, or text with no headers at all, becomes an untitled general section.
func extractSections(text string) []section {
	var sections []section
	var title string
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if content == "" {
			return
		}
		sections = append(sections, section{
			title:       title,
			content:     content,
			sectionType: classifySection(title),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "### ") {
			flush()
			title = strings.TrimSpace(line[3:])
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

func classifySection(title string) models.SectionType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "learning objective"):
		return models.SectionLearningObjectives
	case strings.Contains(lower, "vocabulary"), strings.Contains(lower, "concept"):
		return models.SectionVocabulary
	case strings.Contains(lower, "mechanism"):
		return models.SectionMechanisms
	case strings.Contains(lower, "experiment"):
		return models.SectionExperiments
	case strings.Contains(lower, "application"):
		return models.SectionApplications
	case strings.Contains(lower, "regulation"):
		return models.SectionRegulation
	default:
		return models.SectionGeneral
	}
}
