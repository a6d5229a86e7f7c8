// Package config loads kundali runtime settings through viper.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/karaka"
	"github.com/papapumpkin/kundali/internal/varga"
)

// Formats returns the output formats accepted by the format key.
func Formats() []string {
	return []string{"text", "json", "yaml", "toml"}
}

// Config holds all runtime configuration for a kundali run.
// Values are populated from .kundali.yaml, KUNDALI_* env vars, and CLI flags.
type Config struct {
	EphemerisPath string `mapstructure:"ephemeris_path"`
	Ayanamsa      string `mapstructure:"ayanamsa"`
	HouseSystem   string `mapstructure:"house_system"`
	KarakaScheme  int    `mapstructure:"karaka_scheme"`
	Format        string `mapstructure:"format"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Workers       int    `mapstructure:"workers"`
	// Vargas selects the divisional charts reported per planet. Empty means
	// every supported division.
	Vargas []string `mapstructure:"vargas"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags, and rejects values
// the rest of the program cannot use.
func Load() (Config, error) {
	viper.SetDefault("ephemeris_path", "./data/ephemeris")
	viper.SetDefault("ayanamsa", "LAHIRI")
	viper.SetDefault("house_system", "placidus")
	viper.SetDefault("karaka_scheme", 7)
	viper.SetDefault("format", "text")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("vargas", []string{})

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated value. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.ParsedAyanamsa(); err != nil {
		errs = append(errs, fmt.Errorf("config: ayanamsa: %w", err))
	}
	if _, err := c.ParsedHouseSystem(); err != nil {
		errs = append(errs, fmt.Errorf("config: house_system: %w", err))
	}
	if _, err := c.ParsedKarakaScheme(); err != nil {
		errs = append(errs, fmt.Errorf("config: karaka_scheme: %w", err))
	}
	if formats := Formats(); !contains(formats, c.Format) {
		errs = append(errs, fmt.Errorf("config: format %q: want one of %s", c.Format, strings.Join(formats, ", ")))
	}
	if _, err := c.ParsedVargas(); err != nil {
		errs = append(errs, fmt.Errorf("config: vargas: %w", err))
	}
	if !contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("config: log_level %q: want debug, info, warn or error", c.LogLevel))
	}
	if !contains([]string{"text", "json"}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("config: log_format %q: want text or json", c.LogFormat))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("config: workers must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// ParsedAyanamsa returns the configured default sidereal mode.
func (c Config) ParsedAyanamsa() (ephemeris.Ayanamsa, error) {
	return ephemeris.ParseAyanamsa(c.Ayanamsa)
}

// ParsedHouseSystem returns the configured house system.
func (c Config) ParsedHouseSystem() (ephemeris.HouseSystem, error) {
	return ephemeris.ParseHouseSystem(c.HouseSystem)
}

// ParsedKarakaScheme returns the configured karaka scheme.
func (c Config) ParsedKarakaScheme() (karaka.Scheme, error) {
	return karaka.ParseScheme(c.KarakaScheme)
}

// ParsedVargas returns the configured divisions in ascending order without
// duplicates, or every supported division when none are configured.
func (c Config) ParsedVargas() ([]varga.Division, error) {
	if len(c.Vargas) == 0 {
		return varga.Divisions(), nil
	}
	out := make([]varga.Division, 0, len(c.Vargas))
	for _, s := range c.Vargas {
		d, err := varga.ParseDivision(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
