package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/paths"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/search"
	"github.com/five82/popcorn/internal/ui"
	"github.com/five82/popcorn/internal/watchlist"
)

// Options configure the popcorn application. Non-empty fields override the
// config file and environment.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/popcorn/prefs.toml
	APIKey        string
	WatchlistPath string
	LogFile       string
}

// Session holds the wired domain components behind the UI.
type Session struct {
	Config    config.Config
	Client    *omdb.Client
	Store     *watchlist.FileStore
	Watchlist *watchlist.Manager
	Search    *search.Engine
	Viewer    *detail.Viewer
}

// Run boots the popcorn TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v (using defaults)", err)
	}

	session, err := NewSession(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:        ctx,
		Search:         session.Search,
		Viewer:         session.Viewer,
		Watchlist:      session.Watchlist,
		Prefs:          userPrefs,
		PrefsPath:      prefsPath,
		MinQueryLength: cfg.MinQueryLength,
	})
}

// LoadConfig reads the config file and environment, applies the command
// line overrides in opts and validates the result.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if v := strings.TrimSpace(opts.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(opts.WatchlistPath); v != "" {
		resolved, err := paths.Expand(v)
		if err != nil {
			return config.Config{}, fmt.Errorf("watch-list path: %w", err)
		}
		cfg.WatchlistPath = resolved
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		cfg.LogFile = paths.ExpandOr(v, v)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewSession wires the OMDb client, the watch-list and the search and detail
// state machines from cfg. Changing the query closes the open movie.
func NewSession(cfg config.Config) (*Session, error) {
	client, err := omdb.NewClient(omdb.Options{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.RequestTimeout,
		CacheSize: cfg.DetailCacheSize,
		CacheTTL:  cfg.DetailCacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init omdb client: %w", err)
	}

	store, err := watchlist.NewFileStore(cfg.WatchlistPath)
	if err != nil {
		return nil, fmt.Errorf("init watch-list store: %w", err)
	}

	viewer := detail.NewViewer(client)
	engine := search.NewEngine(client, search.Options{
		MinQueryLength: cfg.MinQueryLength,
		OnQueryChange:  viewer.Close,
	})

	return &Session{
		Config:    cfg,
		Client:    client,
		Store:     store,
		Watchlist: watchlist.Load(store),
		Search:    engine,
		Viewer:    viewer,
	}, nil
}

// Close cancels any lookups still in flight.
func (s *Session) Close() {
	s.Search.Close()
	s.Viewer.Close()
}
