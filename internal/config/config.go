package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultRestrictedDirs are top-level directory names never offered as roots
var DefaultRestrictedDirs = []string{
	"System32",
	"Program Files",
	"Program Files (x86)",
	"Windows",
	"usr",
	"etc",
	"var",
	"bin",
	"sbin",
	"lib",
	"opt",
	"tmp",
	"Volumes",
}

// DefaultTimeFormat renders timestamps to second precision without a zone
const DefaultTimeFormat = "2006-01-02T15:04:05"

// Config represents the manifest generator configuration
type Config struct {
	// Manifest settings
	Directories       []string `mapstructure:"directories"`        // roots to scan, in order
	OutputFile        string   `mapstructure:"output_file"`        // manifest output path
	ChecksumAlgorithm string   `mapstructure:"checksum_algorithm"` // sha256, sha1, sha512, md5

	// Timestamp settings
	Timezone   string `mapstructure:"timezone"`    // IANA name, "Local" or "UTC"
	TimeFormat string `mapstructure:"time_format"` // Go reference layout

	// Query settings
	RestrictedDirs []string `mapstructure:"restricted_dirs"` // names hidden from root listing
	TreeMaxDepth   int      `mapstructure:"tree_max_depth"`  // directory tree depth ceiling

	// Output settings
	Format string `mapstructure:"format"` // text, json, yaml
}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("directories", []string{})
	v.SetDefault("output_file", "")
	v.SetDefault("checksum_algorithm", "sha256")
	v.SetDefault("timezone", "Local")
	v.SetDefault("time_format", DefaultTimeFormat)
	v.SetDefault("restricted_dirs", DefaultRestrictedDirs)
	v.SetDefault("tree_max_depth", 64)
	v.SetDefault("format", "text")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("FILEMANIFEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks values that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.TreeMaxDepth <= 0 {
		return fmt.Errorf("tree_max_depth must be positive, got %d", c.TreeMaxDepth)
	}
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Format)
	}
	return nil
}
