// ABOUTME: Assistant facade wiring chunking, retrieval, synthesis, and the quiz engine
// ABOUTME: Owns subject detection, the session store, and the analytics aggregate
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cucobaby/studyengine/internal/config"
	"github.com/cucobaby/studyengine/internal/core"
	"github.com/cucobaby/studyengine/internal/llm"
	"github.com/cucobaby/studyengine/internal/models"
	"github.com/cucobaby/studyengine/internal/quiz"
	"github.com/cucobaby/studyengine/internal/storage/sqlite"
	"github.com/cucobaby/studyengine/internal/subjects"
	"github.com/cucobaby/studyengine/internal/vectorstore"
)

// subjectSampleLimit is how many chunks feed subject detection and content
// analysis.
const subjectSampleLimit = 10

// Assistant is the produced interface of the engine: ingestion, question
// answering, and the quiz protocol. Safe for concurrent use; quiz sessions
// themselves are single-owner per session id.
type Assistant struct {
	cfg       *config.Config
	store     vectorstore.Store
	completer llm.Completer

	chunker      *core.Chunker
	retriever    *core.Retriever
	analyzer     *core.ContentAnalyzer
	generator    *quiz.Generator
	detector     *quiz.IntentDetector
	configurator *quiz.Configurator
	sessions     *quiz.SessionStore
	registry     *subjects.Registry

	mu            sync.Mutex
	subject       subjects.Subject
	analysis      *models.ContentAnalysis
	activeSession string

	analyticsMu    sync.Mutex
	analytics      *models.AnalyticsAggregate
	analyticsStore *sqlite.AnalyticsStore
}

// Option configures optional assistant collaborators.
type Option func(*Assistant)

// WithAnalyticsStore persists completed sessions to the given store and
// seeds the in-process aggregate from it.
func WithAnalyticsStore(store *sqlite.AnalyticsStore) Option {
	return func(a *Assistant) { a.analyticsStore = store }
}

// WithAnalysisCompleter runs content analysis through a dedicated completer,
// letting ingest-time analysis use a different model than answers and quizzes.
func WithAnalysisCompleter(completer llm.Completer) Option {
	return func(a *Assistant) { a.analyzer = core.NewContentAnalyzer(completer) }
}

// New creates an assistant. The completer may be nil, which disables the LLM
// tiers (answers fall back to templates; quiz generation and content
// analysis return errors).
func New(cfg *config.Config, store vectorstore.Store, completer llm.Completer, opts ...Option) (*Assistant, error) {
	registry := subjects.NewRegistry()
	a := &Assistant{
		cfg:          cfg,
		store:        store,
		completer:    completer,
		chunker:      core.NewChunker(cfg),
		retriever:    core.NewRetriever(store, cfg),
		analyzer:     core.NewContentAnalyzer(completer),
		generator:    quiz.NewGenerator(completer, cfg.Verbose),
		detector:     quiz.NewIntentDetector(),
		configurator: quiz.NewConfigurator(),
		sessions:     quiz.NewSessionStore(),
		registry:     registry,
		subject:      registry.Get(""),
		analytics:    models.NewAnalyticsAggregate(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.analyticsStore != nil {
		agg, err := a.analyticsStore.LoadAggregate()
		if err != nil {
			return nil, fmt.Errorf("loading persisted analytics: %w", err)
		}
		a.analytics = agg
	}
	return a, nil
}

// Ingest chunks the text and stores it. Markdown-structured text is split
// along its sections; unstructured text goes through the window splitter.
// Returns the stored chunk ids.
func (a *Assistant) Ingest(ctx context.Context, title, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no content to ingest")
	}

	metadata := map[string]string{"title": title}
	documentID := uuid.New().String()

	var chunks []models.ContentChunk
	if strings.Contains(text, "\n## ") || strings.HasPrefix(text, "## ") {
		chunks = a.chunker.ChunkDocument(documentID, text, metadata)
	} else {
		for i, piece := range a.chunker.ChunkWindow(text) {
			chunks = append(chunks, models.ContentChunk{
				ID:          uuid.New().String(),
				DocumentID:  documentID,
				Content:     piece,
				Index:       i,
				SectionType: models.SectionGeneral,
				Metadata:    metadata,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("content produced no usable chunks")
	}

	if err := a.store.Add(ctx, chunks); err != nil {
		return nil, fmt.Errorf("storing chunks: %w", err)
	}

	a.detectSubject(text)

	// New material invalidates any previous topic analysis
	a.mu.Lock()
	a.analysis = nil
	a.mu.Unlock()

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
	}
	return ids, nil
}

// Answer retrieves ranked content for the question and synthesizes an
// answer, with related-topic suggestions for the active subject.
func (a *Assistant) Answer(ctx context.Context, question string) (models.Answer, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	results, err := a.retriever.Retrieve(ctx, question)
	if err != nil {
		return models.Answer{}, nil, fmt.Errorf("retrieving content: %w", err)
	}

	synth := core.NewSynthesizer(a.completer, a.currentSubject(), a.cfg.Verbose)
	answer := synth.Synthesize(ctx, question, results)
	return answer, synth.RelatedTopics(question), nil
}

// AnalyzeContent discovers topics from the stored content. The analysis is
// cached until the next ingestion.
func (a *Assistant) AnalyzeContent(ctx context.Context) (*models.ContentAnalysis, error) {
	a.mu.Lock()
	cached := a.analysis
	a.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	sample, err := a.sampleContent(ctx)
	if err != nil {
		return nil, err
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("no content available to analyze")
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	analysis, err := a.analyzer.Analyze(ctx, sample)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.analysis = analysis
	a.mu.Unlock()
	return analysis, nil
}

// AvailableTopics returns the names of topics eligible for quiz generation.
func (a *Assistant) AvailableTopics(ctx context.Context) ([]string, error) {
	analysis, err := a.AnalyzeContent(ctx)
	if err != nil {
		return nil, err
	}
	eligible := analysis.EligibleTopics()
	names := make([]string, len(eligible))
	for i, topic := range eligible {
		names[i] = topic.Name
	}
	return names, nil
}

// StartQuiz classifies the utterance and, for quiz requests, opens a session
// in the configuring state holding the eligible topics. Any session still
// awaiting configuration or answers is discarded without touching analytics.
func (a *Assistant) StartQuiz(ctx context.Context, utterance string) (quiz.Intent, *quiz.Session, error) {
	intent := a.detector.Detect(utterance)
	if !intent.IsQuizRequest {
		return intent, nil, nil
	}

	topics, err := a.AvailableTopics(ctx)
	if err != nil {
		return intent, nil, fmt.Errorf("discovering quiz topics: %w", err)
	}
	if len(topics) == 0 {
		return intent, nil, fmt.Errorf("no topics have enough content for a quiz yet")
	}

	session := quiz.NewSession(topics)

	a.mu.Lock()
	if a.activeSession != "" {
		// Unanswered sessions are dropped without folding into analytics
		a.sessions.Delete(a.activeSession)
	}
	a.activeSession = session.ID
	a.mu.Unlock()

	a.sessions.Put(session)
	return intent, session, nil
}

// ConfigureQuiz resolves the configuration utterance for a session, gathers
// topic content through retrieval, generates the questions, and starts the
// quiz. Topic resolution failures return a *quiz.ConfigError.
func (a *Assistant) ConfigureQuiz(ctx context.Context, sessionID, utterance string) (*quiz.Session, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	cfg, err := a.configurator.Resolve(utterance, session.AvailableTopics)
	if err != nil {
		return nil, err
	}

	if !a.topicEligible(cfg.Topic) {
		return nil, fmt.Errorf("%q: %w", cfg.Topic, quiz.ErrTopicNotEligible)
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	sourceContent := a.topicContent(ctx, cfg.Topic)
	questions, err := a.generator.Generate(ctx, cfg, sourceContent)
	if err != nil {
		return nil, err
	}
	if err := session.Begin(cfg, questions); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitAnswer processes one quiz turn. The turn index must match the
// question currently awaiting an answer. Completing the session folds its
// counts into the analytics aggregate and releases the session id.
func (a *Assistant) SubmitAnswer(ctx context.Context, sessionID string, turnIndex int, answer string) (quiz.TurnResult, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return quiz.TurnResult{}, err
	}

	question, qErr := session.CurrentQuestion()
	result, err := session.Submit(turnIndex, answer)
	if err != nil {
		return quiz.TurnResult{}, err
	}

	// Wrong answers get tutoring feedback, falling back to the stored
	// explanation when no model is available
	if qErr == nil && !result.Correct && !result.Skipped &&
		(result.Summary == nil || !result.Summary.EndedEarly) {
		fbCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
		result.Feedback = a.generator.Feedback(fbCtx, question, answer)
		cancel()
	}

	if result.Done {
		a.completeSession(session, result.Summary)
	}
	return result, nil
}

// SessionByID returns the quiz session with the given id, or
// quiz.ErrNoActiveSession when no such session exists.
func (a *Assistant) SessionByID(id string) (*quiz.Session, error) {
	return a.sessions.Get(id)
}

// EndQuiz ends the session immediately, as if the user sent an end command.
func (a *Assistant) EndQuiz(ctx context.Context, sessionID string) (quiz.TurnResult, error) {
	session, err := a.sessions.Get(sessionID)
	if err != nil {
		return quiz.TurnResult{}, err
	}
	return a.SubmitAnswer(ctx, sessionID, session.Current, "end quiz")
}

// Analytics returns a copy of the accumulated analytics aggregate.
func (a *Assistant) Analytics() *models.AnalyticsAggregate {
	a.analyticsMu.Lock()
	defer a.analyticsMu.Unlock()
	return a.analytics.Clone()
}

// Clear removes all stored content and cached analysis.
func (a *Assistant) Clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing content: %w", err)
	}
	a.mu.Lock()
	a.analysis = nil
	a.mu.Unlock()
	return nil
}

// Subject reports the currently active subject configuration.
func (a *Assistant) Subject() subjects.Subject {
	return a.currentSubject()
}

func (a *Assistant) completeSession(session *quiz.Session, summary *models.QuizSummary) {
	answered, correct, byTopic := session.TopicCounts()

	a.analyticsMu.Lock()
	a.analytics.Fold(answered, correct, byTopic)
	a.analyticsMu.Unlock()

	if a.analyticsStore != nil && summary != nil {
		if err := a.analyticsStore.SaveSession(session.Config, *summary, answered, correct, byTopic); err != nil {
			log.Printf("[ANALYTICS] Persisting session %s failed: %v", session.ID, err)
		}
	}

	a.mu.Lock()
	if a.activeSession == session.ID {
		a.activeSession = ""
	}
	a.mu.Unlock()
	a.sessions.Delete(session.ID)
}

func (a *Assistant) detectSubject(sample string) {
	detected := a.registry.Detect(sample)
	a.mu.Lock()
	a.subject = detected
	a.mu.Unlock()
	if a.cfg.Verbose {
		log.Printf("[SUBJECT] Using %s configuration", detected.Name())
	}
}

func (a *Assistant) currentSubject() subjects.Subject {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.subject
}

func (a *Assistant) topicEligible(name string) bool {
	a.mu.Lock()
	analysis := a.analysis
	a.mu.Unlock()
	// Session topics were eligible when the session opened; without a
	// fresher analysis there is nothing to re-check against
	if analysis == nil {
		return true
	}
	for _, topic := range analysis.EligibleTopics() {
		if strings.EqualFold(topic.Name, name) {
			return true
		}
	}
	return false
}

// topicContent gathers stored content about a topic for question generation.
// A retrieval failure degrades to topic-only generation rather than aborting.
func (a *Assistant) topicContent(ctx context.Context, topic string) string {
	results, err := a.retriever.Retrieve(ctx, topic+" key concepts and definitions")
	if err != nil {
		log.Printf("[QUIZ] Gathering content for %q failed: %v", topic, err)
		return ""
	}
	var b strings.Builder
	for _, res := range results {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(res.Content)
	}
	return b.String()
}

func (a *Assistant) sampleContent(ctx context.Context) ([]string, error) {
	count, err := a.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting stored chunks: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	limit := subjectSampleLimit
	if limit > count {
		limit = count
	}
	results, err := a.store.Query(ctx, "course content overview", limit)
	if err != nil {
		return nil, fmt.Errorf("sampling stored content: %w", err)
	}
	sample := make([]string, len(results))
	for i, res := range results {
		sample[i] = res.Content
	}
	return sample, nil
}
