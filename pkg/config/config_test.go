package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SearchConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("SEARCH_CACHE_TTL_SECONDS", "120")
	os.Setenv("SEARCH_CACHE_RECONNECT_ATTEMPTS", "5")
	defer func() {
		os.Unsetenv("SEARCH_CACHE_TTL_SECONDS")
		os.Unsetenv("SEARCH_CACHE_RECONNECT_ATTEMPTS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 120, cfg.Search.CacheTTLSeconds)
	assert.Equal(t, 5, cfg.Search.ReconnectAttempts)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("SEARCH_CACHE_TTL_SECONDS")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 300, cfg.Search.CacheTTLSeconds)
	assert.Equal(t, "banquet", cfg.Database.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "banquet", Password: "s3cret",
		Database: "banquet", SSLMode: "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=banquet password=s3cret dbname=banquet sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
