package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedVars = []string{
	"APP_PORT", "CORS_ORIGINS", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME",
	"JWT_SECRET_KEY", "JWT_TTL", "DIGEST_CRON", "TIMEZONE", "DIGEST_WEBHOOK_URL",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_EXPORT_ID", "METRICS_ENABLED", "LOG_LEVEL",
}

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range managedVars {
		t.Setenv(key, values[key])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET_KEY": "s3cret"})

	cfg, err := Load("testdata-missing.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, StoreMongoDB, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "coopledger", cfg.MongoDB.DBName)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Digest.Enabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"JWT_SECRET_KEY":                 "s3cret",
		"APP_PORT":                       "9090",
		"CORS_ORIGINS":                   "https://a.example, https://b.example,",
		"STORE_DRIVER":                   "Memory",
		"JWT_TTL":                        "24h",
		"DIGEST_CRON":                    "0 7 * * 1",
		"TIMEZONE":                       "Africa/Conakry",
		"GOOGLE_SHEETS_CREDENTIALS_PATH": "/etc/creds.json",
		"GOOGLE_SHEET_EXPORT_ID":         "sheet-1",
		"METRICS_ENABLED":                "false",
		"LOG_LEVEL":                      "DEBUG",
	})

	cfg, err := Load("testdata-missing.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Digest.Enabled())
	assert.True(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "missing secret", values: map[string]string{}},
		{name: "unknown driver", values: map[string]string{"JWT_SECRET_KEY": "s", "STORE_DRIVER": "postgres"}},
		{name: "bad ttl", values: map[string]string{"JWT_SECRET_KEY": "s", "JWT_TTL": "a week"}},
		{name: "bad cron", values: map[string]string{"JWT_SECRET_KEY": "s", "DIGEST_CRON": "every day"}},
		{name: "bad timezone", values: map[string]string{"JWT_SECRET_KEY": "s", "DIGEST_CRON": "@daily", "TIMEZONE": "Mars/Olympus"}},
		{name: "half sheets config", values: map[string]string{"JWT_SECRET_KEY": "s", "GOOGLE_SHEET_EXPORT_ID": "sheet-1"}},
		{name: "bad metrics flag", values: map[string]string{"JWT_SECRET_KEY": "s", "METRICS_ENABLED": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.values)
			_, err := Load("testdata-missing.env")
			assert.Error(t, err)
		})
	}
}
