// Package config handles application configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Database  DatabaseConfig `yaml:"database"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	LLM       LLMConfig      `yaml:"llm"`
	Evidence  EvidenceConfig `yaml:"evidence_sources"`
	Pipeline  PipelineConfig `yaml:"pipeline"`
	RateLimits RateLimitConfig `yaml:"rate_limits"`
	Logging   LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type KnowledgeConfig struct {
	// Path to a YAML knowledge base. Empty means the built-in base.
	Path string `yaml:"path"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, ollama, or empty to disable
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	OllamaURL string `yaml:"ollama_url"`
}

type EvidenceConfig struct {
	Wikipedia         bool    `yaml:"wikipedia"`
	WikipediaLanguage string  `yaml:"wikipedia_language"`
	FactCheckURL      string  `yaml:"fact_check_url"`
	SourceTimeoutSec  int     `yaml:"source_timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type PipelineConfig struct {
	MaxConcurrency  int      `yaml:"max_concurrency"`
	CacheTTLMinutes int      `yaml:"cache_ttl_minutes"`
	ClaimIndicators []string `yaml:"claim_indicators"` // empty means the default vocabulary
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// SourceTimeout returns the per-source timeout as a duration.
func (e EvidenceConfig) SourceTimeout() time.Duration {
	return time.Duration(e.SourceTimeoutSec) * time.Second
}

// CacheTTL returns the verification cache TTL as a duration.
func (p PipelineConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "./data/claimcheck.db",
		},
		LLM: LLMConfig{
			Provider: "",
			Model:    "gpt-4o-mini",
		},
		Evidence: EvidenceConfig{
			Wikipedia:         true,
			WikipediaLanguage: "en",
			SourceTimeoutSec:  10,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Pipeline: PipelineConfig{
			MaxConcurrency:  4,
			CacheTTLMinutes: 10,
		},
		RateLimits: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run with -generate-config to create one)", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content := interpolateEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GenerateSample creates a sample configuration file.
func GenerateSample(path string) error {
	sample := `# claimcheck configuration

server:
  port: 8080

database:
  path: ./data/claimcheck.db

knowledge:
  # Optional curated knowledge base (YAML). Omit to use the built-in topics.
  # path: ./knowledge.yaml

llm:
  # Leave provider empty to disable the generative evidence source.
  provider: openai  # openai, ollama
  model: gpt-4o-mini
  api_key: ${OPENAI_API_KEY}

  # For Ollama (local):
  # provider: ollama
  # model: llama3
  # ollama_url: http://localhost:11434

evidence_sources:
  wikipedia: true
  wikipedia_language: en
  # Claim-review API endpoint. Empty disables the fact-checking source.
  # fact_check_url: https://factchecktools.example.com/v1/claims:search
  source_timeout_seconds: 10
  requests_per_second: 2
  burst: 5

pipeline:
  max_concurrency: 4
  cache_ttl_minutes: 10
  # claim_indicators: []   # override the default indicator vocabulary

rate_limits:
  requests_per_minute: 60

logging:
  level: info  # debug, info, warn, error
  format: json # json or text
`
	return os.WriteFile(path, []byte(sample), 0644)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch c.LLM.Provider {
	case "", "ollama":
	case "openai":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider)
	}

	if c.Pipeline.MaxConcurrency < 1 {
		return fmt.Errorf("pipeline max_concurrency must be at least 1")
	}

	if c.Evidence.SourceTimeoutSec < 1 {
		return fmt.Errorf("evidence source_timeout_seconds must be at least 1")
	}

	return nil
}

// interpolateEnvVars replaces ${VAR_NAME} with environment variable values.
func interpolateEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if not set
	})
}
