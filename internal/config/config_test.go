// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers defaults, environment overrides, and invalid values
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChunkMaxSize != 800 {
		t.Errorf("expected default chunk max size 800, got %d", cfg.ChunkMaxSize)
	}
	if cfg.ChunkMinSize != 20 {
		t.Errorf("expected default chunk min size 20, got %d", cfg.ChunkMinSize)
	}
	if cfg.ChunkOverlap != 100 {
		t.Errorf("expected default chunk overlap 100, got %d", cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 {
		t.Errorf("expected default top k 3, got %d", cfg.TopK)
	}
	if cfg.CallTimeout != 30*time.Second {
		t.Errorf("expected default call timeout 30s, got %v", cfg.CallTimeout)
	}
	if cfg.ScoreWordWeight != 1.0 {
		t.Errorf("expected default word weight 1.0, got %f", cfg.ScoreWordWeight)
	}
	if cfg.ScoreLengthBonus != 0.5 {
		t.Errorf("expected default length bonus 0.5, got %f", cfg.ScoreLengthBonus)
	}
	if cfg.ScoreLengthThreshold != 200 {
		t.Errorf("expected default length threshold 200, got %d", cfg.ScoreLengthThreshold)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STUDYENGINE_CHUNK_MAX_SIZE", "1200")
	t.Setenv("STUDYENGINE_TOP_K", "5")
	t.Setenv("STUDYENGINE_CALL_TIMEOUT", "45s")
	t.Setenv("STUDYENGINE_SCORE_LENGTH_BONUS", "0.25")
	t.Setenv("STUDYENGINE_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChunkMaxSize != 1200 {
		t.Errorf("expected chunk max size 1200, got %d", cfg.ChunkMaxSize)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected top k 5, got %d", cfg.TopK)
	}
	if cfg.CallTimeout != 45*time.Second {
		t.Errorf("expected call timeout 45s, got %v", cfg.CallTimeout)
	}
	if cfg.ScoreLengthBonus != 0.25 {
		t.Errorf("expected length bonus 0.25, got %f", cfg.ScoreLengthBonus)
	}
	if !cfg.Verbose {
		t.Error("expected verbose to be true")
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("STUDYENGINE_TOP_K", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TopK != 3 {
		t.Errorf("expected fallback top k 3, got %d", cfg.TopK)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ChunkMaxSize: 800,
			ChunkMinSize: 20,
			ChunkOverlap: 100,
			TopK:         3,
			MaxRetries:   3,
			CallTimeout:  30 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"zero chunk max size", func(c *Config) { c.ChunkMaxSize = 0 }, true},
		{"negative chunk min size", func(c *Config) { c.ChunkMinSize = -1 }, true},
		{"min size exceeds max", func(c *Config) { c.ChunkMinSize = 900 }, true},
		{"overlap exceeds max size", func(c *Config) { c.ChunkOverlap = 800 }, true},
		{"zero top k", func(c *Config) { c.TopK = 0 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"zero timeout", func(c *Config) { c.CallTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireAPIKey(); err == nil {
		t.Error("expected error when API key missing")
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("unexpected error with API key set: %v", err)
	}
}
