package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &Config{
		AWSProfile:   "web",
		AWSRegion:    "eu-west-1",
		CacheControl: "public, max-age=86400",
		MaxWorkers:   5,
		BackupDir:    "/var/backups/cirrus",
	}
	require.NoError(t, saveTo(path, want))

	got, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
