package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Providers struct {
		// Single bounded timeout per source call; lookups are read-only
		// and idempotent, so there are no automatic retries.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"providers"`
	News struct {
		Domains          []string `yaml:"domains"`
		CryptoDomains    []string `yaml:"crypto_domains"`
		WindowDays       int      `yaml:"window_days"`
		CryptoWindowDays int      `yaml:"crypto_window_days"`
	} `yaml:"news"`
	// Profile "full" runs every equity enrichment (insider, social,
	// dual-mode narrative); "reduced" keeps quotes and news only.
	Profile string `yaml:"profile"`
	LLM     struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
}

func (c *Config) Validate() error {
	if c.Profile != "full" && c.Profile != "reduced" {
		return fmt.Errorf("invalid profile '%s': must be 'full' or 'reduced'", c.Profile)
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE', or 'NOOP'", c.LLM.Provider)
	}
	if c.Providers.TimeoutSeconds <= 0 || c.Providers.TimeoutSeconds > 60 {
		return fmt.Errorf("providers.timeout_seconds must be between 1-60, got %d", c.Providers.TimeoutSeconds)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// DefaultConfig returns a config that works with no config file present.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Providers.TimeoutSeconds == 0 {
		c.Providers.TimeoutSeconds = 8
	}
	if len(c.News.Domains) == 0 {
		c.News.Domains = []string{
			"reuters.com", "bloomberg.com", "cnbc.com", "marketwatch.com",
			"finance.yahoo.com", "wsj.com", "ft.com", "businessinsider.com",
			"fortune.com", "seekingalpha.com",
		}
	}
	if len(c.News.CryptoDomains) == 0 {
		c.News.CryptoDomains = []string{
			"coindesk.com", "cointelegraph.com", "decrypt.co", "theblock.co",
			"reuters.com", "cnbc.com",
		}
	}
	if c.News.WindowDays == 0 {
		c.News.WindowDays = 7
	}
	if c.News.CryptoWindowDays == 0 {
		c.News.CryptoWindowDays = 3
	}
	if c.Profile == "" {
		c.Profile = "full"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 900
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.25
	}
}
