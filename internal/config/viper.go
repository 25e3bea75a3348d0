// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV and spreadsheet output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// Citation is written as the first line of cleaned output when non-empty.
	Citation  string `mapstructure:"citation" yaml:"citation"`
	WriteXLSX bool   `mapstructure:"write_xlsx" yaml:"write_xlsx"`
}

// ParserConfig tunes the page classification engine.
type ParserConfig struct {
	TopMatterColumn       int      `mapstructure:"top_matter_column" yaml:"top_matter_column"`
	MinTopMatterLines     int      `mapstructure:"min_top_matter_lines" yaml:"min_top_matter_lines"`
	OfficeLookback        int      `mapstructure:"office_lookback" yaml:"office_lookback"`
	ContinuationSeparator string   `mapstructure:"continuation_separator" yaml:"continuation_separator"`
	ExtraSubtotals        []string `mapstructure:"extra_subtotals" yaml:"extra_subtotals"`
}

// PagesConfig describes where extracted page text lives.
type PagesConfig struct {
	Directory   string `mapstructure:"directory" yaml:"directory"`
	FilePattern string `mapstructure:"file_pattern" yaml:"file_pattern"`
}

// BioguideConfig controls senator identifier lookups.
type BioguideConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	CurrentURL     string `mapstructure:"current_url" yaml:"current_url"`
	HistoricalURL  string `mapstructure:"historical_url" yaml:"historical_url"`
	CacheDir       string `mapstructure:"cache_dir" yaml:"cache_dir"`
	MaxAgeDays     int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DownloadConfig controls report downloads from govinfo.
type DownloadConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
	Attempts       int    `mapstructure:"attempts" yaml:"attempts"`
	DelayMillis    int    `mapstructure:"delay_millis" yaml:"delay_millis"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
}

// ExtractConfig controls page extraction from PDF files.
type ExtractConfig struct {
	Binary string `mapstructure:"binary" yaml:"binary"`
	Force  bool   `mapstructure:"force" yaml:"force"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	CSV      CSVConfig      `mapstructure:"csv" yaml:"csv"`
	Parser   ParserConfig   `mapstructure:"parser" yaml:"parser"`
	Pages    PagesConfig    `mapstructure:"pages" yaml:"pages"`
	Bioguide BioguideConfig `mapstructure:"bioguide" yaml:"bioguide"`
	Download DownloadConfig `mapstructure:"download" yaml:"download"`
	Extract  ExtractConfig  `mapstructure:"extract" yaml:"extract"`
}

// DefaultCitation is the attribution line of the published cleaned files.
const DefaultCitation = "This data was parsed on an experimental basis by the Sunlight Foundation from Senate disbursement reports. " +
	"Please cite 'The Sunlight Foundation' in any usage. " +
	"For more information see the readme at http://assets-reporting.s3.amazonaws.com/1.0/senate_disbursements/readme.txt."

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads the given
// file instead of searching the default locations when path is non-empty.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.senate-csv")
		v.AddConfigPath(".senate-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("SENATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. Decode and validate
	return decode(v)
}

// Default returns the configuration built from defaults alone. It panics
// if the defaults do not decode or validate.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	config, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("invalid default configuration: %v", err))
	}
	return config
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.citation", DefaultCitation)
	v.SetDefault("csv.write_xlsx", false)

	v.SetDefault("parser.top_matter_column", 48)
	v.SetDefault("parser.min_top_matter_lines", 7)
	v.SetDefault("parser.office_lookback", 5)
	v.SetDefault("parser.continuation_separator", " + ")
	v.SetDefault("parser.extra_subtotals", []string{})

	v.SetDefault("pages.directory", "pages")
	v.SetDefault("pages.file_pattern", "layout_%d.txt")

	v.SetDefault("bioguide.enabled", true)
	v.SetDefault("bioguide.current_url", "https://raw.githubusercontent.com/unitedstates/congress-legislators/main/legislators-current.yaml")
	v.SetDefault("bioguide.historical_url", "https://raw.githubusercontent.com/unitedstates/congress-legislators/main/legislators-historical.yaml")
	v.SetDefault("bioguide.cache_dir", ".bioguide_cache")
	v.SetDefault("bioguide.max_age_days", 7)
	v.SetDefault("bioguide.timeout_seconds", 60)

	v.SetDefault("download.base_url", "https://www.govinfo.gov/content/pkg")
	v.SetDefault("download.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("download.attempts", 3)
	v.SetDefault("download.delay_millis", 1000)
	v.SetDefault("download.timeout_seconds", 120)
	v.SetDefault("download.output_dir", ".")

	v.SetDefault("extract.binary", "pdftotext")
	v.SetDefault("extract.force", false)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Parser.TopMatterColumn < 1 {
		return fmt.Errorf("parser.top_matter_column must be positive, got: %d", config.Parser.TopMatterColumn)
	}
	if config.Parser.MinTopMatterLines < 1 {
		return fmt.Errorf("parser.min_top_matter_lines must be positive, got: %d", config.Parser.MinTopMatterLines)
	}
	if config.Parser.OfficeLookback < 0 {
		return fmt.Errorf("parser.office_lookback must not be negative, got: %d", config.Parser.OfficeLookback)
	}

	if !strings.Contains(config.Pages.FilePattern, "%d") {
		return fmt.Errorf("pages.file_pattern must contain %%d, got: %s", config.Pages.FilePattern)
	}

	if config.Bioguide.Enabled {
		for _, raw := range []string{config.Bioguide.CurrentURL, config.Bioguide.HistoricalURL} {
			if _, err := url.ParseRequestURI(raw); err != nil {
				return fmt.Errorf("invalid bioguide source URL %q: %w", raw, err)
			}
		}
		if config.Bioguide.MaxAgeDays < 0 {
			return fmt.Errorf("bioguide.max_age_days must not be negative, got: %d", config.Bioguide.MaxAgeDays)
		}
	}

	if config.Download.Attempts < 1 || config.Download.Attempts > 20 {
		return fmt.Errorf("download.attempts must be between 1 and 20, got: %d", config.Download.Attempts)
	}
	if config.Download.TimeoutSeconds < 1 || config.Download.TimeoutSeconds > 3600 {
		return fmt.Errorf("download.timeout_seconds must be between 1 and 3600, got: %d", config.Download.TimeoutSeconds)
	}

	if config.Extract.Binary == "" {
		return fmt.Errorf("extract.binary must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
