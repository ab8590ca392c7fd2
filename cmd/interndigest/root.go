package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/interndigest/internal/adapter"
	"github.com/amishk599/interndigest/internal/config"
	"github.com/amishk599/interndigest/internal/filter"
	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/notifier"
	"github.com/amishk599/interndigest/internal/pipeline"
	"github.com/amishk599/interndigest/internal/rank"
	"github.com/amishk599/interndigest/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "interndigest",
	Short: "Daily India internship digest",
	Long:  "interndigest scrapes internship listings from several job sites, dedupes and ranks them, and mails a digest.",
	// Default to `run` so that `interndigest` with no args does a full run.
	// This keeps cron and CI workflow entries short.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: INTERNDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&strictDelivery, "strict-delivery", false, "exit with status 2 when the digest could not be delivered")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > INTERNDIGEST_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("INTERNDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupSender(cfg *config.Config, logger *slog.Logger) model.Sender {
	switch cfg.Delivery.Type {
	case "smtp":
		logger.Info("using smtp sender", "host", cfg.Delivery.Host, "recipients", len(cfg.Delivery.Recipients))
		return notifier.NewSMTPSender(notifier.SMTPConfig{
			Host:     cfg.Delivery.Host,
			Port:     cfg.Delivery.Port,
			Username: cfg.Delivery.Username,
			Password: cfg.Delivery.Password,
			From:     cfg.Delivery.From,
		}, logger)
	case "slack":
		logger.Info("using slack sender")
		return notifier.NewSlackSender(cfg.Delivery.WebhookURL, &http.Client{Timeout: 30 * time.Second}, logger)
	default:
		return notifier.NewLogSender(logger)
	}
}

// runStore is a run archive that can also be pruned and closed.
type runStore interface {
	model.RunStore
	Cleanup(ctx context.Context, olderThan time.Duration) error
	Close() error
}

// openStore opens the run history database, or a no-op store when the
// configured path is empty.
func openStore(cfg *config.Config) (runStore, error) {
	if cfg.Store.Path == "" {
		return store.NewNopStore(), nil
	}
	return store.NewSQLiteStore(cfg.Store.Path)
}

// applyOverrides copies the non-zero fields of sc over the profile defaults.
func applyOverrides(p adapter.SiteProfile, sc config.SourceConfig) adapter.SiteProfile {
	if sc.MaxKeywords > 0 {
		p.MaxKeywords = sc.MaxKeywords
	}
	if sc.MaxLocations > 0 {
		p.MaxLocations = sc.MaxLocations
	}
	if sc.MaxCards > 0 {
		p.MaxCards = sc.MaxCards
	}
	if sc.MinDelay > 0 {
		p.MinDelay = sc.MinDelay
	}
	if sc.MaxDelay > 0 {
		p.MaxDelay = sc.MaxDelay
	}
	if sc.Timeout > 0 {
		p.Timeout = sc.Timeout
	}
	return p
}

// buildFetchers creates one adapter per enabled source, ordered by source
// priority so that dedup keeps the preferred copy of a cross-posted role.
func buildFetchers(sources []config.SourceConfig, titleKeywords []string, logger *slog.Logger) []*adapter.HTMLAdapter {
	titles := filter.NewTitleFilter(titleKeywords)

	var adapters []*adapter.HTMLAdapter
	for _, sc := range sources {
		profile, ok := adapter.ProfileFor(sc.Name)
		if !ok {
			logger.Warn("unsupported source, skipping", "source", sc.Name)
			continue
		}
		profile = applyOverrides(profile, sc)
		adapters = append(adapters, adapter.NewHTMLAdapter(profile, titles, logger))
		logger.Debug("registered source",
			"source", string(profile.Source),
			"max_keywords", profile.MaxKeywords,
			"max_locations", profile.MaxLocations,
			"max_cards", profile.MaxCards,
		)
	}

	sort.SliceStable(adapters, func(i, j int) bool {
		return rank.Priority(adapters[i].Source()) < rank.Priority(adapters[j].Source())
	})
	return adapters
}

func asFetchers(adapters []*adapter.HTMLAdapter) []model.PostingFetcher {
	out := make([]model.PostingFetcher, len(adapters))
	for i, a := range adapters {
		out[i] = a
	}
	return out
}

func newDriver(cfg *config.Config, fetchers []model.PostingFetcher, sender model.Sender, runs model.RunStore, logger *slog.Logger) *pipeline.Driver {
	return pipeline.NewDriver(fetchers, sender, runs, pipeline.Options{
		Keywords:   cfg.Search.Keywords,
		Locations:  cfg.Search.Locations,
		MaxSize:    cfg.Report.MaxPostings,
		ByRecency:  cfg.Report.SortByRecency,
		Subject:    cfg.Report.Subject,
		Recipients: cfg.Delivery.Recipients,
	}, logger)
}
