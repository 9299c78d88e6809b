package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/five82/kpcc/internal/config"
	"github.com/five82/kpcc/internal/logging"
	"github.com/five82/kpcc/internal/podcast"
	"github.com/five82/kpcc/internal/prefs"
	"github.com/five82/kpcc/internal/state"
	"github.com/five82/kpcc/internal/ui"
	"github.com/five82/kpcc/pkg/kpcc"
)

// Options configure the browser.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/kpcc/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the browser until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed", "component", "app", "error", err)
	}

	client, err := NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("init kpcc client: %w", err)
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	store := &state.Store{}
	poller := NewPoller(client, store, logger.Logger, QueriesFor(cfg), interval)
	logger.Info("starting", "component", "app", "base_url", cfg.BaseURL, "poll", interval.String())

	// Populate the store before the UI draws its first frame.
	poller.Refresh(ctx)
	poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Podcasts:  podcast.NewReader(&http.Client{Timeout: cfg.RequestTimeout}, cfg.UserAgent),
		Store:     store,
		Refresh:   poller.Trigger,
		Config:    &cfg,
		Logger:    logger.Logger,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.StartView,
		PrefsPath: opts.PrefsPath,
	})
}

// NewClient builds an API client from cfg. Library debug records go to the
// same log file as everything else.
func NewClient(cfg config.Config, logger *logging.Logger) (*kpcc.Client, error) {
	opts := []kpcc.Option{
		kpcc.WithBaseURL(cfg.BaseURL),
		kpcc.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		kpcc.WithUserAgent(cfg.UserAgent),
		kpcc.WithDebugLevel(cfg.Debug),
	}
	if logger != nil {
		opts = append(opts, kpcc.WithLogger(logger.Logger))
	}
	return kpcc.NewClient(opts...)
}

// QueriesFor maps config onto poll queries. The schedule window is left open
// for the poller to anchor at today on each poll.
func QueriesFor(cfg config.Config) Queries {
	return Queries{
		Articles: kpcc.ArticleQuery{
			Types: cfg.ArticleTypes,
			Limit: cfg.ArticleLimit,
		},
		Lists:           kpcc.ListQuery{Context: cfg.ListContext},
		SettingsContext: cfg.SettingsContext,
	}
}
