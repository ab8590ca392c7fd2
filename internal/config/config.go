package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for one digest run.
type Config struct {
	Search   SearchConfig
	Sources  []SourceConfig
	Report   ReportConfig
	Delivery DeliveryConfig
	Store    StoreConfig
}

// SearchConfig holds the search inputs shared by every source.
type SearchConfig struct {
	Keywords      []string
	Locations     []string
	TitleKeywords []string // internship allow-list applied to scraped titles
}

// SourceConfig enables a job site and optionally overrides its profile caps.
// Zero values keep the profile defaults.
type SourceConfig struct {
	Name         string
	Enabled      bool
	MaxKeywords  int
	MaxLocations int
	MaxCards     int
	MinDelay     time.Duration
	MaxDelay     time.Duration
	Timeout      time.Duration
}

// ReportConfig controls report size and ordering.
type ReportConfig struct {
	MaxPostings   int
	Subject       string
	SortByRecency bool
}

// DeliveryConfig controls which sender is used and its settings.
type DeliveryConfig struct {
	Type       string // "smtp", "slack" or "log"
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
	WebhookURL string
}

// StoreConfig points at the run history database. An empty path disables it.
// Runs older than Retention are pruned after each run; zero keeps everything.
type StoreConfig struct {
	Path      string
	Retention time.Duration
}

// KnownSources are the source names accepted in the sources section.
var KnownSources = []string{"linkedin", "indeed", "internshala", "naukri"}

// DefaultTitleKeywords is the internship allow-list used when none is configured.
var DefaultTitleKeywords = []string{"intern", "internship", "trainee", "graduate", "fresher"}

const (
	defaultMaxPostings = 30
	defaultSubject     = "Daily India Internships - Latest Opportunities"
	defaultSMTPPort    = 587
	defaultStorePath   = "runs.db"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Search   rawSearchConfig   `yaml:"search"`
	Sources  []rawSourceConfig `yaml:"sources"`
	Report   rawReportConfig   `yaml:"report"`
	Delivery rawDeliveryConfig `yaml:"delivery"`
	Store    *rawStoreConfig   `yaml:"store"`
}

type rawSearchConfig struct {
	Keywords      []string `yaml:"keywords"`
	Locations     []string `yaml:"locations"`
	TitleKeywords []string `yaml:"title_keywords"`
}

type rawSourceConfig struct {
	Name         string `yaml:"name"`
	Enabled      bool   `yaml:"enabled"`
	MaxKeywords  int    `yaml:"max_keywords"`
	MaxLocations int    `yaml:"max_locations"`
	MaxCards     int    `yaml:"max_cards"`
	MinDelay     string `yaml:"min_delay"`
	MaxDelay     string `yaml:"max_delay"`
	Timeout      string `yaml:"timeout"`
}

type rawReportConfig struct {
	MaxPostings   int    `yaml:"max_postings"`
	Subject       string `yaml:"subject"`
	SortByRecency bool   `yaml:"sort_by_recency"`
}

type rawDeliveryConfig struct {
	Type       string `yaml:"type"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	Recipients string `yaml:"recipients"` // comma-separated, usually ${RECEIVERS}
	WebhookURL string `yaml:"webhook_url"`
}

type rawStoreConfig struct {
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

// Load reads a .env file next to the working directory if present, then
// parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	// A missing .env is normal in CI where secrets come from the environment.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse expands environment variables in data and builds a validated Config.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	sources := make([]SourceConfig, 0, len(raw.Sources))
	for _, rs := range raw.Sources {
		sc := SourceConfig{
			Name:         strings.ToLower(strings.TrimSpace(rs.Name)),
			Enabled:      rs.Enabled,
			MaxKeywords:  rs.MaxKeywords,
			MaxLocations: rs.MaxLocations,
			MaxCards:     rs.MaxCards,
		}
		var err error
		if sc.MinDelay, err = parseOptionalDuration(rs.MinDelay); err != nil {
			return nil, fmt.Errorf("parse sources[%s].min_delay %q: %w", rs.Name, rs.MinDelay, err)
		}
		if sc.MaxDelay, err = parseOptionalDuration(rs.MaxDelay); err != nil {
			return nil, fmt.Errorf("parse sources[%s].max_delay %q: %w", rs.Name, rs.MaxDelay, err)
		}
		if sc.Timeout, err = parseOptionalDuration(rs.Timeout); err != nil {
			return nil, fmt.Errorf("parse sources[%s].timeout %q: %w", rs.Name, rs.Timeout, err)
		}
		sources = append(sources, sc)
	}

	titleKeywords := raw.Search.TitleKeywords
	if len(titleKeywords) == 0 {
		titleKeywords = DefaultTitleKeywords
	}

	maxPostings := raw.Report.MaxPostings
	if maxPostings == 0 {
		maxPostings = defaultMaxPostings
	}
	subject := raw.Report.Subject
	if subject == "" {
		subject = defaultSubject
	}

	deliveryType := strings.ToLower(raw.Delivery.Type)
	if deliveryType == "" {
		deliveryType = "log"
	}
	port := raw.Delivery.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	from := raw.Delivery.From
	if from == "" {
		from = raw.Delivery.Username
	}

	storePath := defaultStorePath
	var retention time.Duration
	if raw.Store != nil {
		storePath = raw.Store.Path
		var err error
		if retention, err = parseOptionalDuration(raw.Store.Retention); err != nil {
			return nil, fmt.Errorf("parse store.retention %q: %w", raw.Store.Retention, err)
		}
	}

	cfg := &Config{
		Search: SearchConfig{
			Keywords:      cleanList(raw.Search.Keywords),
			Locations:     cleanList(raw.Search.Locations),
			TitleKeywords: titleKeywords,
		},
		Sources: sources,
		Report: ReportConfig{
			MaxPostings:   maxPostings,
			Subject:       subject,
			SortByRecency: raw.Report.SortByRecency,
		},
		Delivery: DeliveryConfig{
			Type:       deliveryType,
			Host:       raw.Delivery.Host,
			Port:       port,
			Username:   raw.Delivery.Username,
			Password:   raw.Delivery.Password,
			From:       from,
			Recipients: SplitRecipients(raw.Delivery.Recipients),
			WebhookURL: raw.Delivery.WebhookURL,
		},
		Store: StoreConfig{Path: storePath, Retention: retention},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnabledSources returns the enabled entries of the sources section in file order.
func (c *Config) EnabledSources() []SourceConfig {
	var out []SourceConfig
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// SplitRecipients splits a comma-separated address list, dropping blanks.
func SplitRecipients(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func validate(cfg *Config) error {
	if len(cfg.Search.Keywords) == 0 {
		return fmt.Errorf("search.keywords must not be empty")
	}
	if len(cfg.Search.Locations) == 0 {
		return fmt.Errorf("search.locations must not be empty")
	}

	enabled := 0
	for _, s := range cfg.Sources {
		if !isKnownSource(s.Name) {
			return fmt.Errorf("sources: unknown source %q (known: %s)", s.Name, strings.Join(KnownSources, ", "))
		}
		if s.MinDelay < 0 || s.MaxDelay < 0 || s.Timeout < 0 {
			return fmt.Errorf("sources[%s]: durations must not be negative", s.Name)
		}
		if s.MaxDelay != 0 && s.MaxDelay < s.MinDelay {
			return fmt.Errorf("sources[%s]: max_delay %v is below min_delay %v", s.Name, s.MaxDelay, s.MinDelay)
		}
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	if cfg.Store.Retention < 0 {
		return fmt.Errorf("store.retention must not be negative")
	}

	if cfg.Report.MaxPostings < 0 {
		return fmt.Errorf("report.max_postings must be positive, got %d", cfg.Report.MaxPostings)
	}

	switch cfg.Delivery.Type {
	case "smtp":
		if cfg.Delivery.Host == "" {
			return fmt.Errorf("delivery.host is required when type is \"smtp\"")
		}
		if cfg.Delivery.Username == "" || cfg.Delivery.Password == "" {
			return fmt.Errorf("delivery.username and delivery.password are required when type is \"smtp\"")
		}
		if len(cfg.Delivery.Recipients) == 0 {
			return fmt.Errorf("delivery.recipients is required when type is \"smtp\"")
		}
	case "slack":
		if !strings.HasPrefix(cfg.Delivery.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("delivery.webhook_url must start with https://hooks.slack.com/")
		}
	case "log":
	default:
		return fmt.Errorf("delivery.type must be smtp, slack or log, got %q", cfg.Delivery.Type)
	}

	return nil
}

func isKnownSource(name string) bool {
	for _, k := range KnownSources {
		if name == k {
			return true
		}
	}
	return false
}
