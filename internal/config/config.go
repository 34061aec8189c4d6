package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "BLOG_SCANNER_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	cronExprEnv      = "BLOG_SCANNER_CRON"
	logLevelEnv      = "BLOG_SCANNER_LOG_LEVEL"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Duration is a time.Duration that unmarshals from yaml strings like "6h".
type Duration time.Duration

// UnmarshalYAML parses the duration string form.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts back to the standard library type.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds high-level settings required across the application.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Scanner     ScannerConfig     `yaml:"scanner"`
	Challenge   ChallengeConfig   `yaml:"challenge"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when scan passes run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// ScannerConfig bounds rendering and controls reprocessing cadence.
type ScannerConfig struct {
	// Freshness is the minimum elapsed time before a previously processed
	// post is eligible for re-extraction.
	Freshness         Duration `yaml:"freshness"`
	NavigationTimeout Duration `yaml:"navigationTimeout"`
	FrameWaitTimeout  Duration `yaml:"frameWaitTimeout"`
	FrameSelector     string   `yaml:"frameSelector"`
	UserAgent         string   `yaml:"userAgent"`
}

// ChallengeConfig is the inclusive date range defining in-scope posts. The
// default range mirrors one past campaign; the literal dates carry no meaning
// beyond being a configurable example.
type ChallengeConfig struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// RecognitionConfig carries the minimum-substance thresholds.
type RecognitionConfig struct {
	MinCharCountNoSpaces int `yaml:"minCharCountNoSpaces"`
	MinImageCount        int `yaml:"minImageCount"`
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. Missing or malformed files fall back to defaults; use Validate
// to fail fast on settings a run cannot start without.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate reports the first setting a run cannot start without. A failure
// here is fatal at startup: the pass never begins on broken configuration.
func (c Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Challenge.Start.IsZero() || c.Challenge.End.IsZero() {
		return fmt.Errorf("challenge.start and challenge.end are required")
	}
	if c.Challenge.End.Before(c.Challenge.Start) {
		return fmt.Errorf("challenge.end %s precedes challenge.start %s",
			c.Challenge.End.Format(time.RFC3339), c.Challenge.Start.Format(time.RFC3339))
	}
	if c.Recognition.MinCharCountNoSpaces < 0 || c.Recognition.MinImageCount < 0 {
		return fmt.Errorf("recognition thresholds must be non-negative")
	}
	if c.Scanner.Freshness.Std() <= 0 {
		return fmt.Errorf("scanner.freshness must be positive")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(cronExprEnv); v != "" {
		c.Scheduler.CronExpression = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Scanner: ScannerConfig{
			Freshness:         Duration(6 * time.Hour),
			NavigationTimeout: Duration(60 * time.Second),
			FrameWaitTimeout:  Duration(15 * time.Second),
			FrameSelector:     "iframe#mainFrame",
			UserAgent:         defaultUserAgent,
		},
		Challenge: ChallengeConfig{
			Start: time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.June, 25, 23, 59, 59, 0, time.UTC),
		},
		Recognition: RecognitionConfig{
			MinCharCountNoSpaces: 1000,
			MinImageCount:        3,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
