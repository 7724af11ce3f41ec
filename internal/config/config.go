package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cfb-edge/internal/analysis"
	"cfb-edge/internal/odds"
)

// Defaults for configuration values.
const (
	DefaultMinEV           = 5.0
	DefaultMinGap          = 3.0
	DefaultMarket          = odds.MarketSpread
	DefaultSortKey         = analysis.SortByEV
	DefaultSortDirection   = analysis.Descending
	DefaultPollInterval    = 5 * time.Minute
	DefaultSnapshotPath    = "/data/lines.db"
	DefaultAlertCooldown   = 30 * time.Minute
	DefaultSeasonType      = "regular"
	DefaultCleanupInterval = time.Hour
)

// Config holds all application configuration.
type Config struct {
	APIKey     string
	Year       int
	Week       int
	SeasonType string

	MinEV       float64
	MinGap      float64
	Market      odds.MarketType
	SortKey     analysis.SortKey
	SortDir     analysis.Direction
	Sportsbooks []string // Allow-list; empty = every book

	PollInterval  time.Duration
	SnapshotPath  string // Empty disables the snapshot store
	BoostSeed     int64
	EngineFile    string // Optional YAML overrides for analysis.Config
	AlertCooldown time.Duration
	RunOnce       bool
	Port          string // Health check port; empty disables the server
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		APIKey:        os.Getenv("CFBD_API_KEY"),
		Year:          time.Now().Year(),
		SeasonType:    DefaultSeasonType,
		MinEV:         DefaultMinEV,
		MinGap:        DefaultMinGap,
		Market:        DefaultMarket,
		SortKey:       DefaultSortKey,
		SortDir:       DefaultSortDirection,
		PollInterval:  DefaultPollInterval,
		SnapshotPath:  DefaultSnapshotPath,
		BoostSeed:     time.Now().UnixNano(),
		EngineFile:    os.Getenv("ENGINE_CONFIG"),
		AlertCooldown: DefaultAlertCooldown,
		RunOnce:       os.Getenv("RUN_ONCE") == "true",
		Port:          os.Getenv("PORT"),
	}

	if v := os.Getenv("CFBD_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Year = n
		}
	}

	if v := os.Getenv("CFBD_WEEK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Week = n
		}
	}

	if v := os.Getenv("CFBD_SEASON_TYPE"); v != "" {
		cfg.SeasonType = v
	}

	if v := os.Getenv("MIN_EV"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinEV = f
		}
	}

	if v := os.Getenv("MIN_GAP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinGap = f
		}
	}

	if v := os.Getenv("MARKET"); v != "" {
		if m, err := odds.ParseMarket(v); err == nil {
			cfg.Market = m
		} else {
			cfg.Market = odds.MarketType(v) // rejected by Validate
		}
	}

	if v := os.Getenv("SORT_KEY"); v != "" {
		if k, err := analysis.ParseSortKey(v); err == nil {
			cfg.SortKey = k
		} else {
			cfg.SortKey = analysis.SortKey(v)
		}
	}

	if v := os.Getenv("SORT_DIR"); v != "" {
		if d, err := analysis.ParseDirection(v); err == nil {
			cfg.SortDir = d
		} else {
			cfg.SortDir = analysis.Direction(v)
		}
	}

	if v := os.Getenv("SPORTSBOOKS"); v != "" {
		for _, book := range strings.Split(v, ",") {
			if book = strings.TrimSpace(book); book != "" {
				cfg.Sportsbooks = append(cfg.Sportsbooks, book)
			}
		}
	}

	if v := os.Getenv("POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if v, ok := os.LookupEnv("SNAPSHOT_DB"); ok {
		cfg.SnapshotPath = v
	}

	if v := os.Getenv("BOOST_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.BoostSeed = n
		}
	}

	if v := os.Getenv("ALERT_COOLDOWN_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.AlertCooldown = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.MinEV < 0 || cfg.MinEV > 100 {
		return fmt.Errorf("MIN_EV must be between 0 and 100, got %f", cfg.MinEV)
	}
	if cfg.MinGap < 0 {
		return fmt.Errorf("MIN_GAP must be non-negative, got %f", cfg.MinGap)
	}
	if cfg.Market != odds.MarketSpread && cfg.Market != odds.MarketTotal {
		return fmt.Errorf("MARKET must be spread or total, got %q", cfg.Market)
	}
	if _, err := analysis.ParseSortKey(string(cfg.SortKey)); err != nil {
		return fmt.Errorf("SORT_KEY: %w", err)
	}
	if _, err := analysis.ParseDirection(string(cfg.SortDir)); err != nil {
		return fmt.Errorf("SORT_DIR: %w", err)
	}
	if cfg.Year < 1869 {
		return fmt.Errorf("CFBD_YEAR must be a college football season, got %d", cfg.Year)
	}
	if cfg.Week < 0 {
		return fmt.Errorf("CFBD_WEEK must be non-negative, got %d", cfg.Week)
	}
	if cfg.PollInterval < time.Second {
		return fmt.Errorf("POLL_INTERVAL_MS must be at least 1s, got %v", cfg.PollInterval)
	}
	if cfg.AlertCooldown < 0 {
		return fmt.Errorf("ALERT_COOLDOWN_MS must be non-negative, got %v", cfg.AlertCooldown)
	}
	return nil
}

// LoadEngineFile overlays YAML tuning onto base. Keys missing from the file
// keep their base values. An empty path returns base unchanged.
func LoadEngineFile(path string, base analysis.Config) (analysis.Config, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading engine config: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing engine config: %w", err)
	}
	return cfg, nil
}

// ValidateEngine checks the analysis tuning for values that would make the
// math meaningless.
func ValidateEngine(cfg analysis.Config) error {
	if cfg.StakePerLeg <= 0 {
		return fmt.Errorf("stake_per_leg must be positive, got %f", cfg.StakePerLeg)
	}
	if cfg.StandardPrice > -100 && cfg.StandardPrice < 100 {
		return fmt.Errorf("standard_price must be a valid American price, got %d", cfg.StandardPrice)
	}
	if cfg.KellyFraction <= 0 || cfg.KellyFraction > 1 {
		return fmt.Errorf("kelly_fraction must be between 0 and 1, got %f", cfg.KellyFraction)
	}
	for name, band := range map[string]analysis.ProbabilityBand{
		"spread_band": cfg.SpreadBand,
		"total_band":  cfg.TotalBand,
	} {
		if band.Min < 0 || band.Max > 100 || band.Min > band.Max {
			return fmt.Errorf("%s must satisfy 0 <= min <= max <= 100, got [%v, %v]", name, band.Min, band.Max)
		}
	}
	b := cfg.Boost
	if b.MultiplierMin < 1 || b.MultiplierMin > b.MultiplierMax {
		return fmt.Errorf("boost multipliers must satisfy 1 <= min <= max, got [%v, %v]", b.MultiplierMin, b.MultiplierMax)
	}
	if b.BaselineMin > b.BaselineMax {
		return fmt.Errorf("boost baseline_min %d exceeds baseline_max %d", b.BaselineMin, b.BaselineMax)
	}
	if b.MaxPerGame < 1 {
		return fmt.Errorf("boost max_per_game must be at least 1, got %d", b.MaxPerGame)
	}
	return nil
}

// FormatSportsbooks returns a human-readable string for the allow-list.
func FormatSportsbooks(books []string) string {
	if len(books) == 0 {
		return "all books"
	}
	return strings.Join(books, ",")
}
