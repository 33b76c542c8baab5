package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/feed"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Webhook WebhookConfig `yaml:"webhook" json:"webhook" jsonschema:"description=Inbound webhook configuration"`

	Classifier ClassifierConfig `yaml:"classifier" json:"classifier" jsonschema:"description=Content classifier configuration"`

	Normalize struct {
		Provider   string `yaml:"provider" json:"provider" jsonschema:"default=instagram,description=Post identifier namespace prefix"`
		TitleLimit int    `yaml:"title_limit" json:"title_limit" jsonschema:"default=256,description=Maximum display title length"`
	} `yaml:"normalize" json:"normalize" jsonschema:"description=Item normalizer configuration"`

	Dedup DedupConfig `yaml:"dedup" json:"dedup" jsonschema:"description=Idempotency guard configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedbridge.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Dispatch DispatchConfig `yaml:"dispatch" json:"dispatch" jsonschema:"description=Discord dispatch configuration"`

	Pull PullConfig `yaml:"pull" json:"pull" jsonschema:"description=Operator-triggered feed pull configuration"`
}

// WebhookConfig holds inbound webhook authentication and rate limiting
type WebhookConfig struct {
	Secret    string `yaml:"secret" json:"secret" jsonschema:"description=Shared HMAC secret for signature verification (can use environment variable)"`
	RateLimit struct {
		Window      time.Duration `yaml:"window" json:"window" jsonschema:"default=60s,description=Rate limit window size"`
		MaxRequests int           `yaml:"max_requests" json:"max_requests" jsonschema:"default=30,description=Maximum requests per origin per window"`
	} `yaml:"rate_limit" json:"rate_limit" jsonschema:"description=Per-origin rate limiting"`
}

// ClassifierConfig holds content classifier tuning. The confidence constants
// are heuristics; treat them as tunable, not fixed.
type ClassifierConfig struct {
	LexiconFile      string  `yaml:"lexicon_file" json:"lexicon_file" jsonschema:"description=External lexicon YAML path (empty uses the embedded default)"`
	TermWeight       float64 `yaml:"term_weight" json:"term_weight" jsonschema:"default=0.2,minimum=0,maximum=1,description=Confidence added per distinct matched term"`
	Threshold        float64 `yaml:"threshold" json:"threshold" jsonschema:"default=0.25,minimum=0,maximum=1,description=Overall confidence requiring age-gated handling"`
	FilterConfidence float64 `yaml:"filter_confidence" json:"filter_confidence" jsonschema:"minimum=0,maximum=1,description=Confidence at which content is filtered outright (0 disables)"`
}

// DedupConfig selects the idempotency guard backing store
type DedupConfig struct {
	Backend string        `yaml:"backend" json:"backend" jsonschema:"default=sqlite,enum=sqlite,enum=redis,enum=memory,description=Dedup backing store"`
	TTL     time.Duration `yaml:"ttl" json:"ttl" jsonschema:"description=Redis key expiry (0 keeps keys forever)"`
	Redis   struct {
		Addr     string `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis address"`
		Password string `yaml:"password" json:"password" jsonschema:"description=Redis password"`
		DB       int    `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database number"`
	} `yaml:"redis" json:"redis" jsonschema:"description=Redis connection (backend=redis)"`
}

// DispatchConfig holds the Discord posting target
type DispatchConfig struct {
	WebhookURL           string        `yaml:"webhook_url" json:"webhook_url" jsonschema:"required,description=Discord incoming webhook URL (can use environment variable)"`
	Timeout              time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Dispatch request timeout"`
	AgeRestrictedChannel bool          `yaml:"age_restricted_channel" json:"age_restricted_channel" jsonschema:"default=false,description=Target channel accepts age-gated content"`
}

// PullConfig holds the operator-triggered RSS fallback
type PullConfig struct {
	Feeds         []feed.Source `yaml:"feeds" json:"feeds" jsonschema:"description=Fallback feed sources"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-feed fetch timeout"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=3,description=Maximum concurrent feed fetches"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=feedbridge/1.0,description=User agent for feed requests"`
	AdminToken    string        `yaml:"admin_token" json:"admin_token" jsonschema:"description=Token required to trigger a pull (empty disables the check)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Webhook.RateLimit.Window == 0 {
		cfg.Webhook.RateLimit.Window = time.Minute
	}
	if cfg.Webhook.RateLimit.MaxRequests == 0 {
		cfg.Webhook.RateLimit.MaxRequests = 30
	}

	if cfg.Classifier.TermWeight == 0 {
		cfg.Classifier.TermWeight = 0.2
	}
	if cfg.Classifier.Threshold == 0 {
		cfg.Classifier.Threshold = 0.25
	}

	if cfg.Normalize.Provider == "" {
		cfg.Normalize.Provider = "instagram"
	}
	if cfg.Normalize.TitleLimit == 0 {
		cfg.Normalize.TitleLimit = 256
	}

	if cfg.Dedup.Backend == "" {
		cfg.Dedup.Backend = "sqlite"
	}
	if cfg.Dedup.Redis.Addr == "" {
		cfg.Dedup.Redis.Addr = "localhost:6379"
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:feedbridge.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Dispatch.Timeout == 0 {
		cfg.Dispatch.Timeout = 10 * time.Second
	}

	if cfg.Pull.Timeout == 0 {
		cfg.Pull.Timeout = 30 * time.Second
	}
	if cfg.Pull.MaxConcurrent == 0 {
		cfg.Pull.MaxConcurrent = 3
	}
	if cfg.Pull.UserAgent == "" {
		cfg.Pull.UserAgent = "feedbridge/1.0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Webhook.RateLimit.Window < time.Second {
		return fmt.Errorf("webhook.rate_limit.window must be at least 1 second")
	}
	if cfg.Webhook.RateLimit.MaxRequests < 1 {
		return fmt.Errorf("webhook.rate_limit.max_requests must be at least 1")
	}

	if cfg.Classifier.TermWeight < 0 || cfg.Classifier.TermWeight > 1 {
		return fmt.Errorf("classifier.term_weight must be between 0 and 1")
	}
	if cfg.Classifier.Threshold < 0 || cfg.Classifier.Threshold > 1 {
		return fmt.Errorf("classifier.threshold must be between 0 and 1")
	}
	if cfg.Classifier.FilterConfidence < 0 || cfg.Classifier.FilterConfidence > 1 {
		return fmt.Errorf("classifier.filter_confidence must be between 0 and 1")
	}

	if cfg.Normalize.TitleLimit < 4 {
		return fmt.Errorf("normalize.title_limit must be at least 4")
	}

	switch cfg.Dedup.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("dedup.backend must be sqlite, redis or memory")
	}

	if cfg.Dispatch.WebhookURL == "" {
		return fmt.Errorf("dispatch.webhook_url is required")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetWebhookSecret returns the shared HMAC secret
func (c *Config) GetWebhookSecret() string {
	return c.Webhook.Secret
}
