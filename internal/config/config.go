package config

import (
	"flag"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Значения по умолчанию.
const (
	DefaultAPIURL         = "http://localhost:5050/api"
	DefaultPageSize       = 20
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultCacheTTL       = 30 * time.Minute
	DefaultRequestTimeout = 15 * time.Second
	DefaultLogLevel       = "warn"
)

type Config struct {
	// Catalog service
	APIURL         string        `env:"API_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	CacheTTL       time.Duration `env:"CACHE_TTL"`

	// List behaviour
	PageSize       int           `env:"PAGE_SIZE"`
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE"`
	StrictPages    bool          `env:"STRICT_PAGES"`

	// Local mirror: SQLite file path or postgres:// URL
	MirrorDSN string `env:"MIRROR_DSN"`

	LogLevel string `env:"LOG_LEVEL"`
	Version  bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют значения из env
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "base URL of the catalog API, e.g. "+DefaultAPIURL)
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "how long pokemon details stay cached")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "items per catalog page")
	flag.DurationVar(&cfg.SearchDebounce, "debounce", cfg.SearchDebounce, "search quiet period")
	flag.BoolVar(&cfg.StrictPages, "strict-pages", cfg.StrictPages, "reject pages that repeat an already listed pokemon")
	flag.StringVar(&cfg.MirrorDSN, "mirror", cfg.MirrorDSN, "local mirror DSN (SQLite path or postgres:// URL)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет незаданные и некорректные значения.
func (c *Config) applyDefaults() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if !validAPIURL(c.APIURL) {
		c.APIURL = DefaultAPIURL
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MirrorDSN == "" {
		c.MirrorDSN = defaultMirrorPath()
	}
	switch c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel)); c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = DefaultLogLevel
	}
}

// validAPIURL допускает только абсолютные http(s) URL.
func validAPIURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func defaultMirrorPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = home
	}
	return filepath.Join(base, "Pokedex", "mirror.sqlite")
}
