package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "rebalancer", cfg.Database.Database)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 300, cfg.MarketData.CacheTTLSecs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "rebalancer_test")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "rebalancer_test", cfg.Database.Database)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "rebalancer"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rebalancer sslmode=disable", d.ConnString())
	assert.Equal(t, "postgres://u:p@db:5432/rebalancer?sslmode=disable", d.URL())
}
