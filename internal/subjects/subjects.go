// ABOUTME: Static subject registry with keyword-overlap detection
// ABOUTME: Each subject supplies prompts and topic keywords for its domain
package subjects

import "strings"

// detectThreshold is the minimum number of keyword matches required to
// attribute content to a specific subject.
const detectThreshold = 3

// Subject configures the assistant for a field of study.
type Subject interface {
	// Name is the subject's registry identifier.
	Name() string
	// DisplayName is the human-readable subject name.
	DisplayName() string
	// SystemPrompt is the tutoring prompt used for answer synthesis.
	SystemPrompt() string
	// TopicKeywords maps topic names to related terms, used to suggest
	// related topics alongside answers.
	TopicKeywords() map[string][]string
	// DetectionKeywords are terms whose presence in content indicates
	// this subject.
	DetectionKeywords() []string
}

// Registry holds the known subjects plus a generic fallback.
type Registry struct {
	subjects []Subject
	fallback Subject
}

// NewRegistry creates a registry with all built-in subjects registered.
func NewRegistry() *Registry {
	return &Registry{
		subjects: []Subject{Biology{}},
		fallback: Generic{},
	}
}

// Get returns the subject with the given name, or the generic fallback if
// no subject matches.
func (r *Registry) Get(name string) Subject {
	for _, s := range r.subjects {
		if strings.EqualFold(s.Name(), name) {
			return s
		}
	}
	return r.fallback
}

// Names lists the registered subject names, fallback last.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.subjects)+1)
	for _, s := range r.subjects {
		names = append(names, s.Name())
	}
	return append(names, r.fallback.Name())
}

// Detect scores sample content against each subject's detection keywords
// and returns the first subject with enough matches. Content matching no
// subject gets the generic fallback.
func (r *Registry) Detect(sample string) Subject {
	lower := strings.ToLower(sample)
	for _, s := range r.subjects {
		matches := 0
		for _, keyword := range s.DetectionKeywords() {
			if strings.Contains(lower, keyword) {
				matches++
			}
		}
		if matches >= detectThreshold {
			return s
		}
	}
	return r.fallback
}
