package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/myaschmitz/codereps/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CODEREPS_DB", "")
	t.Setenv("CODEREPS_DIGEST_HOUR", "")

	cfg := config.Load()
	assert.Equal(t, config.DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, config.DefaultDigestHour, cfg.DigestHour)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CODEREPS_DB", "/tmp/custom.db")
	t.Setenv("CODEREPS_DIGEST_HOUR", "21")

	cfg := config.Load()
	assert.Equal(t, "/tmp/custom.db", cfg.DatabasePath)
	assert.Equal(t, 21, cfg.DigestHour)
}

func TestLoadIgnoresInvalidHour(t *testing.T) {
	t.Setenv("CODEREPS_DIGEST_HOUR", "25")

	cfg := config.Load()
	assert.Equal(t, config.DefaultDigestHour, cfg.DigestHour)
}
