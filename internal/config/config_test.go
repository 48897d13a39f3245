package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "wishwell", cfg.Database.Name)
	assert.Equal(t, 60, cfg.Scraper.RateLimitSeconds)
	assert.Equal(t, 15, cfg.Scraper.CacheTTLMinutes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DB_NAME", "wishwell_test")
	t.Setenv("SCRAPER_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "wishwell_test", cfg.Database.Name)
	assert.Equal(t, 5, cfg.Scraper.RateLimitSeconds)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = -1 }},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "missing db name", mutate: func(c *Config) { c.Database.Name = "" }},
		{name: "zero rate limit", mutate: func(c *Config) { c.Scraper.RateLimitSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
