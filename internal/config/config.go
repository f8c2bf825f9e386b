package config

import (
	"os"
	"time"

	"codeberg.org/veland/scrubmon/internal/errors"
	"codeberg.org/veland/scrubmon/internal/reading"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultInterval = 10 // seconds
	defaultEndpoint = "http://localhost:8093/api/readings"
)

type Config struct {
	Interval     int    `mapstructure:"interval"`
	Retention    string `mapstructure:"retention"`
	Endpoint     string `mapstructure:"endpoint"`
	Archive      bool   `mapstructure:"archive"`
	ArchiveDB    string `mapstructure:"archive_db"`
	BatchSize    int    `mapstructure:"batch_size"`
	BatchTimeout int    `mapstructure:"batch_timeout"`
	LogLevel     string `mapstructure:"log_level"`
	Debug        bool   `mapstructure:"debug"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Load reads configuration from the TOML file (path from SCRUBMON_CONFIG,
// falling back to /etc/scrubmon.toml), then applies command line flags on
// top. Flags win over the file, the file wins over defaults.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("retention", reading.DefaultRetention)
	v.SetDefault("endpoint", defaultEndpoint)
	v.SetDefault("archive", false)
	v.SetDefault("archive_db", "")
	v.SetDefault("batch_size", 64)
	v.SetDefault("batch_timeout", 30)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetConfigType("toml")
	if path := os.Getenv("SCRUBMON_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("scrubmon")
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// A fresh flag set per call keeps Load re-entrant under tests
	flags := pflag.NewFlagSet("scrubmon", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Int("interval", defaultInterval, "Seconds between telemetry fetches")
	flags.String("retention", reading.DefaultRetention, "Retention window (30m, 1h, 4h, 12h, 24h, 7d)")
	flags.String("endpoint", defaultEndpoint, "Telemetry endpoint URL")
	flags.Bool("archive", false, "Archive merged readings to sqlite")
	flags.String("archive-db", "", "Path to the archive database")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	flags.Visit(func(f *pflag.Flag) {
		key := f.Name
		if key == "archive-db" {
			key = "archive_db"
		}
		if key == "log-level" {
			key = "log_level"
		}
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if _, err := reading.ParseRetention(c.Retention); err != nil {
		return err
	}
	if c.Endpoint == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "endpoint is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errFactory.Wrap(errors.ErrInvalidLogLevel, err)
	}

	return nil
}

// RetentionDuration resolves the configured retention selector.
func (c *Config) RetentionDuration() time.Duration {
	d, err := reading.ParseRetention(c.Retention)
	if err != nil {
		// Validate() rejected unknown selectors already
		d, _ = reading.ParseRetention(reading.DefaultRetention)
	}

	return d
}

// PollInterval returns the fetch cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
