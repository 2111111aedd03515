// ABOUTME: Configuration management for the study engine
// ABOUTME: Loads settings from environment variables with sensible defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the study engine.
type Config struct {
	// OpenAI settings
	OpenAIAPIKey  string
	OpenAIModel   string
	AnalysisModel string
	MaxRetries    int
	RetryDelay    time.Duration
	CallTimeout   time.Duration

	// Chunking settings
	ChunkMaxSize int
	ChunkMinSize int
	ChunkOverlap int

	// Retrieval settings
	TopK             int
	ResultsPerQuery  int
	MaxQueryVariants int

	// Ranking weights
	ScoreWordWeight      float64
	ScoreLengthBonus     float64
	ScoreLengthThreshold int
	ScorePositionWeight  float64

	// Storage settings
	DatabasePath string

	// Logging
	Verbose bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("STUDYENGINE_MODEL", "gpt-4o-mini"),
		AnalysisModel: getEnv("STUDYENGINE_ANALYSIS_MODEL", "gpt-4o-mini"),
		MaxRetries:    getEnvInt("STUDYENGINE_MAX_RETRIES", 3),
		RetryDelay:    getEnvDuration("STUDYENGINE_RETRY_DELAY", 1*time.Second),
		CallTimeout:   getEnvDuration("STUDYENGINE_CALL_TIMEOUT", 30*time.Second),

		ChunkMaxSize: getEnvInt("STUDYENGINE_CHUNK_MAX_SIZE", 800),
		ChunkMinSize: getEnvInt("STUDYENGINE_CHUNK_MIN_SIZE", 20),
		ChunkOverlap: getEnvInt("STUDYENGINE_CHUNK_OVERLAP", 100),

		TopK:             getEnvInt("STUDYENGINE_TOP_K", 3),
		ResultsPerQuery:  getEnvInt("STUDYENGINE_RESULTS_PER_QUERY", 3),
		MaxQueryVariants: getEnvInt("STUDYENGINE_MAX_QUERY_VARIANTS", 4),

		ScoreWordWeight:      getEnvFloat("STUDYENGINE_SCORE_WORD_WEIGHT", 1.0),
		ScoreLengthBonus:     getEnvFloat("STUDYENGINE_SCORE_LENGTH_BONUS", 0.5),
		ScoreLengthThreshold: getEnvInt("STUDYENGINE_SCORE_LENGTH_THRESHOLD", 200),
		ScorePositionWeight:  getEnvFloat("STUDYENGINE_SCORE_POSITION_WEIGHT", 1.0),

		DatabasePath: os.Getenv("STUDYENGINE_DB_PATH"),

		Verbose: getEnvBool("STUDYENGINE_VERBOSE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ChunkMaxSize <= 0 {
		return fmt.Errorf("chunk max size must be positive, got %d", c.ChunkMaxSize)
	}
	if c.ChunkMinSize < 0 {
		return fmt.Errorf("chunk min size cannot be negative, got %d", c.ChunkMinSize)
	}
	if c.ChunkMinSize >= c.ChunkMaxSize {
		return fmt.Errorf("chunk min size %d must be less than max size %d", c.ChunkMinSize, c.ChunkMaxSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkMaxSize {
		return fmt.Errorf("chunk overlap %d must be less than max size %d", c.ChunkOverlap, c.ChunkMaxSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top k must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got %d", c.MaxRetries)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %v", c.CallTimeout)
	}
	return nil
}

// RequireAPIKey returns an error if no OpenAI API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
