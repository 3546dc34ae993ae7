package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Providers.TimeoutSeconds != 8 {
		t.Errorf("Expected default timeout 8s, got %d", cfg.Providers.TimeoutSeconds)
	}
	if cfg.Profile != "full" {
		t.Errorf("Expected default profile full, got %s", cfg.Profile)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("Expected default provider NOOP, got %s", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature != 0.25 {
		t.Errorf("Expected default temperature 0.25, got %f", cfg.LLM.Temperature)
	}
	if cfg.News.CryptoWindowDays != 3 {
		t.Errorf("Expected crypto news window 3 days, got %d", cfg.News.CryptoWindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad profile", func(c *Config) { c.Profile = "partial" }},
		{"bad provider", func(c *Config) { c.LLM.Provider = "GEMINI" }},
		{"zero timeout", func(c *Config) { c.Providers.TimeoutSeconds = -1 }},
		{"huge timeout", func(c *Config) { c.Providers.TimeoutSeconds = 120 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("profile: reduced\nproviders:\n  timeout_seconds: 5\nllm:\n  provider: OPENAI\n  model: gpt-4o\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Profile != "reduced" {
		t.Errorf("Expected profile reduced, got %s", cfg.Profile)
	}
	if cfg.Providers.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", cfg.Providers.TimeoutSeconds)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %s", cfg.LLM.Model)
	}
	// Unspecified fields still get defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected defaulted addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
