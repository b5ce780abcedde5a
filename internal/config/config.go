package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/popcorn/internal/paths"
)

// Config captures everything popcorn needs to talk to OMDb and keep its files.
type Config struct {
	APIKey          string
	BaseURL         string
	WatchlistPath   string
	MinQueryLength  int
	RequestTimeout  time.Duration
	DetailCacheSize int
	DetailCacheTTL  time.Duration
	LogFile         string
}

const (
	defaultConfigPath      = "~/.config/popcorn/config.toml"
	defaultBaseURL         = "https://www.omdbapi.com/"
	defaultWatchlistPath   = "~/.local/share/popcorn/watched.json"
	defaultMinQueryLength  = 3
	defaultRequestTimeout  = 10 * time.Second
	defaultDetailCacheSize = 128
	defaultDetailCacheTTL  = 30 * time.Minute

	// EnvPrefix namespaces environment overrides, e.g. POPCORN_API_KEY.
	EnvPrefix = "popcorn"
)

// ErrMissingAPIKey is returned by Validate when no OMDb key was configured.
var ErrMissingAPIKey = errors.New("omdb api key missing: set api_key in the config file, POPCORN_API_KEY, or --api-key")

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		WatchlistPath:   paths.ExpandOr("", defaultWatchlistPath),
		MinQueryLength:  defaultMinQueryLength,
		RequestTimeout:  defaultRequestTimeout,
		DetailCacheSize: defaultDetailCacheSize,
		DetailCacheTTL:  defaultDetailCacheTTL,
	}
}

type fileConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	WatchlistPath   string `toml:"watchlist_path"`
	MinQueryLength  int    `toml:"min_query_length"`
	RequestTimeout  string `toml:"request_timeout"`
	DetailCacheSize int    `toml:"detail_cache_size"`
	DetailCacheTTL  string `toml:"detail_cache_ttl"`
	LogFile         string `toml:"log_file"`
}

type envConfig struct {
	APIKey         string        `envconfig:"API_KEY"`
	BaseURL        string        `envconfig:"BASE_URL"`
	WatchlistPath  string        `envconfig:"WATCHLIST_PATH"`
	MinQueryLength int           `envconfig:"MIN_QUERY_LENGTH"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	CacheSize      int           `envconfig:"DETAIL_CACHE_SIZE"`
	CacheTTL       time.Duration `envconfig:"DETAIL_CACHE_TTL"`
	LogFile        string        `envconfig:"LOG_FILE"`
}

// Load reads the TOML config at path (or the default location), falling back
// to defaults when the file is missing, then applies POPCORN_* environment
// overrides.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.WatchlistPath = paths.ExpandOr(raw.WatchlistPath, defaultWatchlistPath)
	if raw.MinQueryLength > 0 {
		cfg.MinQueryLength = raw.MinQueryLength
	}
	if raw.DetailCacheSize != 0 {
		cfg.DetailCacheSize = raw.DetailCacheSize
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.DetailCacheTTL, err = parseDuration("detail_cache_ttl", raw.DetailCacheTTL, defaultDetailCacheTTL); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = paths.ExpandOr(v, v)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if v := strings.TrimSpace(env.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(env.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(env.WatchlistPath); v != "" {
		cfg.WatchlistPath = paths.ExpandOr(v, defaultWatchlistPath)
	}
	if env.MinQueryLength > 0 {
		cfg.MinQueryLength = env.MinQueryLength
	}
	if env.RequestTimeout > 0 {
		cfg.RequestTimeout = env.RequestTimeout
	}
	if env.CacheSize > 0 {
		cfg.DetailCacheSize = env.CacheSize
	}
	if env.CacheTTL > 0 {
		cfg.DetailCacheTTL = env.CacheTTL
	}
	if v := strings.TrimSpace(env.LogFile); v != "" {
		cfg.LogFile = paths.ExpandOr(v, v)
	}
	return nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.MinQueryLength < 1 {
		return fmt.Errorf("min_query_length must be at least 1, got %d", c.MinQueryLength)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return paths.Expand(defaultConfigPath)
	}
	return paths.Expand(path)
}
