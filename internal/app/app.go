package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/racingicemen/photogroove/internal/config"
	"github.com/racingicemen/photogroove/internal/feed"
	"github.com/racingicemen/photogroove/internal/filters"
	"github.com/racingicemen/photogroove/internal/logging"
	"github.com/racingicemen/photogroove/internal/prefs"
	"github.com/racingicemen/photogroove/internal/ui"
)

// Options configure the photogroove application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/photogroove/prefs.toml
	FeedURL    string // overrides the configured feed when set
}

// Run boots the photogroove TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.FeedURL != "" {
		cfg.FeedURL = opts.FeedURL
	}

	logger, err := logging.NewFile(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	feedClient, err := feed.NewClient(cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("init feed client: %w", err)
	}

	var applier filters.Applier = filters.Discard{}
	var activity filters.ActivitySource
	if cfg.FilterHost != "" {
		renderClient, err := filters.NewClient(cfg.FilterHost)
		if err != nil {
			return fmt.Errorf("init render host client: %w", err)
		}
		applier = renderClient
		activity = renderClient
	}

	logger.Info("starting photogroove",
		zap.String("feed", feedClient.BaseURL()),
		zap.String("filter_host", cfg.FilterHost))

	return ui.Run(ui.Options{
		Context:   ctx,
		Feed:      feedClient,
		Applier:   applier,
		Activity:  activity,
		BaseURL:   feedClient.BaseURL(),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
	})
}
