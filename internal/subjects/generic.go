// ABOUTME: Generic subject configuration used when no specific subject is detected
// ABOUTME: Provides neutral prompts and study-skill topic keywords
package subjects

// Generic is the fallback subject for any educational content.
type Generic struct{}

// Name returns the registry identifier.
func (Generic) Name() string { return "generic" }

// DisplayName returns the human-readable name.
func (Generic) DisplayName() string { return "General Studies" }

// SystemPrompt returns the tutoring prompt for general content.
func (Generic) SystemPrompt() string {
	return `You are a helpful educational tutor assistant. Use the provided course content to answer the student's question accurately and clearly.

Guidelines:
- Base your answer primarily on the provided course content
- Be educational and explain concepts clearly
- If the content doesn't fully answer the question, say so
- Include specific details from the course materials when relevant
- Keep answers concise but thorough
- Use bullet points or numbered lists when helpful for clarity
- Adapt your language to the subject matter and student level`
}

// TopicKeywords maps general study topics to related terms.
func (Generic) TopicKeywords() map[string][]string {
	return map[string][]string{
		"concept":      {"idea", "theory", "principle", "notion"},
		"process":      {"procedure", "method", "steps", "workflow"},
		"analysis":     {"examination", "evaluation", "assessment", "study"},
		"comparison":   {"contrast", "difference", "similarity", "versus"},
		"application":  {"implementation", "usage", "practice", "example"},
		"definition":   {"meaning", "explanation", "description", "term"},
		"relationship": {"connection", "link", "association", "correlation"},
		"cause":        {"reason", "factor", "source", "origin"},
		"effect":       {"result", "outcome", "consequence", "impact"},
		"system":       {"structure", "organization", "framework", "model"},
	}
}

// DetectionKeywords returns terms suggesting generic educational content.
func (Generic) DetectionKeywords() []string {
	return []string{
		"study", "learn", "education", "course", "lesson", "chapter",
		"concept", "theory", "principle", "method", "analysis",
		"example", "definition", "explanation", "understanding",
	}
}
