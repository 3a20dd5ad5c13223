package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sha256", cfg.ChecksumAlgorithm)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, DefaultTimeFormat, cfg.TimeFormat)
	assert.Equal(t, 64, cfg.TreeMaxDepth)
	assert.Equal(t, "text", cfg.Format)
	assert.Empty(t, cfg.Directories)
	assert.Equal(t, DefaultRestrictedDirs, cfg.RestrictedDirs)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filemanifest.yaml")
	content := `directories:
  - /data/a
  - /data/b
timezone: UTC
restricted_dirs:
  - secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/a", "/data/b"}, cfg.Directories)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, []string{"secret"}, cfg.RestrictedDirs)
	assert.Equal(t, "sha256", cfg.ChecksumAlgorithm)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("FILEMANIFEST_CHECKSUM_ALGORITHM", "sha1")
	t.Setenv("FILEMANIFEST_TIMEZONE", "UTC")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "sha1", cfg.ChecksumAlgorithm)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     *time.Location
		wantErr  bool
	}{
		{"Empty means local", "", time.Local, false},
		{"Local", "Local", time.Local, false},
		{"UTC", "UTC", time.UTC, false},
		{"Unknown zone", "Mars/Olympus_Mons", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Timezone: tt.timezone}
			loc, err := cfg.Location()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Valid", Config{Timezone: "UTC", TreeMaxDepth: 10, Format: "json"}, false},
		{"Bad timezone", Config{Timezone: "Nowhere/Land", TreeMaxDepth: 10, Format: "json"}, true},
		{"Zero depth", Config{Timezone: "UTC", TreeMaxDepth: 0, Format: "json"}, true},
		{"Bad format", Config{Timezone: "UTC", TreeMaxDepth: 10, Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
