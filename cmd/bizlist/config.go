package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/bizlist"
	"gopkg.in/yaml.v3"
)

// Config holds the run settings. Zero-valued optional settings disable the
// feature they control.
type Config struct {
	BaseURL              string            `json:"base_url" yaml:"base_url"`
	UserAgent            string            `json:"user_agent" yaml:"user_agent"`
	RequestTimeout       float64           `json:"request_timeout" yaml:"request_timeout"`
	Concurrency          int               `json:"concurrency" yaml:"concurrency"`
	DelayBetweenRequests float64           `json:"delay_between_requests" yaml:"delay_between_requests"`
	OutputDirectory      string            `json:"output_directory" yaml:"output_directory"`
	OutputFormats        []string          `json:"output_formats" yaml:"output_formats"`
	OutputBasename       string            `json:"output_basename" yaml:"output_basename"`
	InputFile            string            `json:"input_file" yaml:"input_file"`
	LogLevel             string            `json:"log_level" yaml:"log_level"`
	MaxRetries           int               `json:"max_retries" yaml:"max_retries"`
	RequestsPerSecond    float64           `json:"requests_per_second" yaml:"requests_per_second"`
	RespectRobots        bool              `json:"respect_robots" yaml:"respect_robots"`
	CachePath            string            `json:"cache_path" yaml:"cache_path"`
	CacheTTL             float64           `json:"cache_ttl" yaml:"cache_ttl"`
	Browser              bool              `json:"browser" yaml:"browser"`
	Aliases              map[string]string `json:"aliases" yaml:"aliases"`
	Headers              map[string]string `json:"headers" yaml:"headers"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "https://www.bizbuysell.com",
		UserAgent:            "BizBuySellScraper/1.0 (+https://bitbash.dev)",
		RequestTimeout:       20,
		Concurrency:          5,
		DelayBetweenRequests: 1.0,
		OutputDirectory:      "data",
		OutputFormats:        []string{"json", "csv", "xlsx"},
		OutputBasename:       "bizbuysell_listings",
		InputFile:            "data/inputs.sample.txt",
		LogLevel:             "INFO",
	}
}

// LoadConfig reads the settings file at path over the defaults. An empty
// path yields the defaults. Files ending in .yaml or .yml are YAML, anything
// else is JSON. Keys missing from the file keep their default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "settings file %s not found", path)
	} else if err != nil {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "read settings: %v", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "parse settings %s: %v", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting as ECONFIG.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return bizlist.Errorf(bizlist.ECONFIG, "request_timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.DelayBetweenRequests < 0 {
		return bizlist.Errorf(bizlist.ECONFIG, "delay_between_requests must not be negative")
	}
	if c.MaxRetries < 0 {
		return bizlist.Errorf(bizlist.ECONFIG, "max_retries must not be negative")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return bizlist.Errorf(bizlist.ECONFIG, "invalid base_url %q", c.BaseURL)
	}
	if c.OutputBasename == "" {
		return bizlist.Errorf(bizlist.ECONFIG, "output_basename must not be empty")
	}
	if _, err := c.Formats(); err != nil {
		return err
	}
	if _, err := c.Schema(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Formats parses the configured output formats.
func (c *Config) Formats() ([]bizlist.Format, error) {
	formats := make([]bizlist.Format, 0, len(c.OutputFormats))
	for _, s := range c.OutputFormats {
		f, err := bizlist.ParseFormat(s)
		if err != nil {
			return nil, bizlist.Errorf(bizlist.ECONFIG, "%s", bizlist.ErrorMessage(err))
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// Schema builds the field schema with the configured extra aliases.
func (c *Config) Schema() (*bizlist.Schema, error) {
	extra := make([]bizlist.Alias, 0, len(c.Aliases))
	for label, field := range c.Aliases {
		extra = append(extra, bizlist.Alias{Label: label, Field: field})
	}
	s, err := bizlist.NewSchema(extra...)
	if err != nil {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "aliases: %s", bizlist.ErrorMessage(err))
	}
	return s, nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return seconds(c.RequestTimeout)
}

// Delay returns the pause after each network fetch.
func (c *Config) Delay() time.Duration {
	return seconds(c.DelayBetweenRequests)
}

// TTL returns the page cache lifetime. Zero means entries never expire.
func (c *Config) TTL() time.Duration {
	return seconds(c.CacheTTL)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
