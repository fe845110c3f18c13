package mirror

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls one sync run.
type Config struct {
	// BaseURL is the GitLab instance, e.g. https://gitlab.example.com.
	BaseURL string `yaml:"base_url"`
	// Token is the PRIVATE-TOKEN value. GLMIRROR_TOKEN overrides it so the
	// secret can stay out of the config file.
	Token     string `yaml:"token"`
	ProjectID int64  `yaml:"project_id"`
	// Endpoints limits the sync set; empty means all.
	Endpoints []string      `yaml:"endpoints"`
	PerPage   int           `yaml:"per_page"`
	MaxPages  int           `yaml:"max_pages"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

// RetryConfig bounds transient-failure retries per request.
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		PerPage:  100,
		MaxPages: 50,
		Timeout:  30 * time.Second,
		Retry: RetryConfig{
			Attempts: 3,
			Backoff:  time.Second,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. The token
// environment variable wins over the file in either case.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if tok := os.Getenv("GLMIRROR_TOKEN"); tok != "" {
		c.Token = tok
	}
}

// Validate checks the config is runnable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.ProjectID <= 0 {
		return fmt.Errorf("project_id is required")
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be in 1..100, got %d", c.PerPage)
	}
	for _, name := range c.Endpoints {
		if _, err := ParseEndpoint(name); err != nil {
			return err
		}
	}
	return nil
}

// SyncSet resolves the configured endpoint names, defaulting to all.
func (c *Config) SyncSet() ([]Endpoint, error) {
	if len(c.Endpoints) == 0 {
		return AllEndpoints, nil
	}
	out := make([]Endpoint, 0, len(c.Endpoints))
	for _, name := range c.Endpoints {
		e, err := ParseEndpoint(name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
