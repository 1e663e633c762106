package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "NEWSINGEST_CONFIG"
	databaseDSNEnv  = "DATABASE_DSN"
	newsAPIKeyEnv   = "NEWS_API_KEY"
	jinaAPIKeyEnv   = "JINA_API_KEY"
	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

// Duration wraps time.Duration so YAML values like "4s" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds high-level settings required across the application.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	NewsAPI  NewsAPIConfig  `yaml:"newsapi"`
	Jina     JinaConfig     `yaml:"jina"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Cleaner  CleanerConfig  `yaml:"cleaner"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// NewsAPIConfig defines how to contact the headline listing provider.
type NewsAPIConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
	PageSize int    `yaml:"pageSize"`
}

// JinaConfig defines how to contact the page-scraping reader.
type JinaConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// GeminiConfig defines how to contact the summarization model.
type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"apiKey"`
}

// PipelineConfig tunes orchestration: categories to traverse, the viability
// threshold for cleaned content, pacing delays, and batch sizes.
type PipelineConfig struct {
	Categories         []string `yaml:"categories"`
	Country            string   `yaml:"country"`
	MinContentLength   int      `yaml:"minContentLength"`
	RunDelay           Duration `yaml:"runDelay"`
	FetchDelay         Duration `yaml:"fetchDelay"`
	SummarizeDelay     Duration `yaml:"summarizeDelay"`
	SummarizeBatchSize int      `yaml:"summarizeBatchSize"`
	BackfillBatchSize  int      `yaml:"backfillBatchSize"`
}

// CleanerConfig externalizes the boilerplate phrase list so domain tuning
// does not require touching the transform logic.
type CleanerConfig struct {
	BoilerplatePhrases []string `yaml:"boilerplatePhrases"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate fails fast when credentials required by the requested mode are
// missing, before any articles are touched.
func (c Config) Validate(mode string) error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is not configured")
	}

	switch mode {
	case "run":
		if c.NewsAPI.APIKey == "" {
			return fmt.Errorf("newsapi api key is not configured")
		}
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini api key is not configured")
		}
	case "fetch":
		if c.NewsAPI.APIKey == "" {
			return fmt.Errorf("newsapi api key is not configured")
		}
	case "summarize":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini api key is not configured")
		}
	case "backfill":
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	if c.Pipeline.MinContentLength <= 0 {
		return fmt.Errorf("pipeline minContentLength must be positive")
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.NewsAPI.APIKey = v
	}

	if v := os.Getenv(jinaAPIKeyEnv); v != "" {
		c.Jina.APIKey = v
	}

	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.NewsAPI.BaseURL != "" {
		base.NewsAPI.BaseURL = override.NewsAPI.BaseURL
	}
	if override.NewsAPI.APIKey != "" {
		base.NewsAPI.APIKey = override.NewsAPI.APIKey
	}
	if override.NewsAPI.PageSize > 0 {
		base.NewsAPI.PageSize = override.NewsAPI.PageSize
	}

	if override.Jina.BaseURL != "" {
		base.Jina.BaseURL = override.Jina.BaseURL
	}
	if override.Jina.APIKey != "" {
		base.Jina.APIKey = override.Jina.APIKey
	}

	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}

	if len(override.Pipeline.Categories) > 0 {
		base.Pipeline.Categories = override.Pipeline.Categories
	}
	if override.Pipeline.Country != "" {
		base.Pipeline.Country = override.Pipeline.Country
	}
	if override.Pipeline.MinContentLength > 0 {
		base.Pipeline.MinContentLength = override.Pipeline.MinContentLength
	}
	if override.Pipeline.RunDelay > 0 {
		base.Pipeline.RunDelay = override.Pipeline.RunDelay
	}
	if override.Pipeline.FetchDelay > 0 {
		base.Pipeline.FetchDelay = override.Pipeline.FetchDelay
	}
	if override.Pipeline.SummarizeDelay > 0 {
		base.Pipeline.SummarizeDelay = override.Pipeline.SummarizeDelay
	}
	if override.Pipeline.SummarizeBatchSize > 0 {
		base.Pipeline.SummarizeBatchSize = override.Pipeline.SummarizeBatchSize
	}
	if override.Pipeline.BackfillBatchSize > 0 {
		base.Pipeline.BackfillBatchSize = override.Pipeline.BackfillBatchSize
	}

	if len(override.Cleaner.BoilerplatePhrases) > 0 {
		base.Cleaner.BoilerplatePhrases = override.Cleaner.BoilerplatePhrases
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: ""},
		NewsAPI: NewsAPIConfig{
			BaseURL:  "https://newsapi.org/v2",
			PageSize: 50,
		},
		Jina: JinaConfig{
			BaseURL: "https://r.jina.ai",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.0-flash",
		},
		Pipeline: PipelineConfig{
			Categories: []string{
				"business", "entertainment", "general", "health",
				"science", "sports", "technology",
			},
			Country:            "us",
			MinContentLength:   300,
			RunDelay:           Duration(4 * time.Second),
			FetchDelay:         Duration(1 * time.Second),
			SummarizeDelay:     Duration(2 * time.Second),
			SummarizeBatchSize: 10,
			BackfillBatchSize:  100,
		},
		Cleaner: CleanerConfig{BoilerplatePhrases: DefaultBoilerplatePhrases()},
		Logging: LoggingConfig{Level: "info"},
	}
}
