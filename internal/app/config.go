package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Constants
const (
	CacheDirName    = "holiday-calendar"
	CacheFilePrefix = "holidays_"
	TmpSuffix       = ".tmp"
	FilePermissions = 0644

	// Error messages
	ErrInvalidYear          = "Invalid year"
	ErrInvalidMonth         = "Invalid month"
	ErrInvalidCountry       = "Invalid country"
	ErrInvalidFormat        = "Invalid format"
	ErrInvalidWeekStart     = "Invalid week start"
	ErrInternalServer       = "Internal server error"
	ErrFailedToRefresh      = "Failed to refresh holidays"
	ErrFailedToGenerateJSON = "Failed to generate JSON"

	// Metadata keys
	MetadataCreatedAt = "created_at"
	MetadataSource    = "source"

	// Holiday sources
	SourceNager   = "nager"
	SourceBuiltin = "builtin"

	// Supported calendar years
	MinYear = 1
	MaxYear = 9999

	// ICS constants
	ICSProductID = "-//Winterberg//Holiday Calendar//EN"
	ICSDomain    = "holiday-calendar.winterberg.de"
)

// Config is read from the environment at startup.
type Config struct {
	Port         int           `env:"HOLIDAY_CALENDAR_PORT"          envDefault:"8080"`
	APIBaseURL   string        `env:"HOLIDAY_CALENDAR_API_URL"       envDefault:"https://date.nager.at/api/v3"`
	Source       string        `env:"HOLIDAY_CALENDAR_SOURCE"        envDefault:"nager"`
	Country      string        `env:"HOLIDAY_CALENDAR_COUNTRY"       envDefault:"US"`
	CacheDir     string        `env:"HOLIDAY_CALENDAR_CACHE_DIR"`
	WeekStart    string        `env:"HOLIDAY_CALENDAR_WEEK_START"    envDefault:"sunday"`
	FetchTimeout time.Duration `env:"HOLIDAY_CALENDAR_FETCH_TIMEOUT" envDefault:"10s"`
	AuthFile     string        `env:"AUTH_FILE"`
}

// LoadConfig parses the environment and fills in defaults that depend on the
// host, such as the user cache directory.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to get cache directory: %w", err)
		}
		cfg.CacheDir = filepath.Join(dir, CacheDirName)
	}
	cfg.Country = strings.ToUpper(cfg.Country)
	if _, err := cfg.Weekday(); err != nil {
		return Config{}, err
	}
	if err := ValidateSource(cfg.Source); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateSource reports an error unless s names a known holiday source.
func ValidateSource(s string) error {
	switch s {
	case SourceNager, SourceBuiltin:
		return nil
	}
	return fmt.Errorf("unknown holiday source %q", s)
}

// ValidateYear reports an error for years outside MinYear..MaxYear.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of range %d-%d", year, MinYear, MaxYear)
	}
	return nil
}

// Weekday returns the configured first day of the week.
func (c Config) Weekday() (time.Weekday, error) {
	return ParseWeekStart(c.WeekStart)
}

// ParseWeekStart accepts "sunday" or "monday" in any case.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("invalid week start %q", s)
}

// NewHolidaySource builds the configured source, wrapped in an on-disk cache.
func (c Config) NewHolidaySource() *CachedSource {
	var next HolidaySource
	switch c.Source {
	case SourceBuiltin:
		next = BuiltinHolidays{}
	default:
		next = NewNagerClient(c.APIBaseURL)
	}
	return &CachedSource{Store: NewHolidayStore(c.CacheDir), Next: next, Name: c.Source}
}
