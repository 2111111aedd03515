// ABOUTME: Resolves free-text quiz configuration against available topics
// ABOUTME: Topic matching tries substring, word overlap, then ordinal reference
package quiz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cucobaby/studyengine/internal/models"
)

// DefaultQuizLength is used when the utterance names no count or preset.
const DefaultQuizLength = 5

// lengthPresets override a freeform number when both appear.
var lengthPresets = []struct {
	name   string
	length int
}{
	{"quick", 5},
	{"comprehensive", 15},
	{"standard", 10},
}

var ordinalPattern = regexp.MustCompile(`topic\s+(\d+)`)

// Configurator resolves configuration utterances into quiz specifications.
type Configurator struct{}

// NewConfigurator creates a configurator.
func NewConfigurator() *Configurator {
	return &Configurator{}
}

// Resolve parses the utterance into a QuizConfig against the available
// topics. An unresolvable topic returns a *ConfigError listing suggestions;
// this is recoverable, not fatal.
func (c *Configurator) Resolve(utterance string, available []string) (models.QuizConfig, error) {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	topic, ok := resolveTopic(lower, available)
	if !ok {
		return models.QuizConfig{}, NewTopicError(utterance, available)
	}

	params := ExtractParameters(lower)

	length := DefaultQuizLength
	if params.HasCount {
		length = params.Count
	}
	for _, preset := range lengthPresets {
		if strings.Contains(lower, preset.name) {
			length = preset.length
			break
		}
	}

	return models.QuizConfig{
		Topic:      topic,
		Type:       params.Type,
		Format:     params.Format,
		Length:     length,
		Difficulty: params.Difficulty,
	}, nil
}

// resolveTopic matches the utterance to a topic name by, in order: substring
// match, word overlap, then a 1-indexed "topic N" reference.
func resolveTopic(lower string, available []string) (string, bool) {
	for _, topic := range available {
		if strings.Contains(lower, strings.ToLower(topic)) {
			return topic, true
		}
	}

	utteranceWords := wordSet(lower)
	for _, topic := range available {
		for word := range wordSet(strings.ToLower(topic)) {
			if utteranceWords[word] {
				return topic, true
			}
		}
	}

	if m := ordinalPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= len(available) {
			return available[n-1], true
		}
	}

	return "", false
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(s) {
		word = strings.Trim(word, ".,;:!?")
		// Short words cause spurious overlap matches
		if len(word) > 3 {
			set[word] = true
		}
	}
	return set
}
