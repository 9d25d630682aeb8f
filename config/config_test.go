package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Recurrence.Interval)
	assert.Equal(t, 3, cfg.Recurrence.BackfillMaxAttempts)
	assert.Equal(t, "20000", cfg.Budget.MonthlyBudget)
	assert.Empty(t, cfg.Events.AMQPURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECURRENCE_INTERVAL", "15m")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, https://kharcha.app ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Recurrence.Interval)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"http://localhost:5173", "https://kharcha.app"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("RECURRENCE_WORKER_ENABLED", "maybe")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Recurrence.WorkerEnabled)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestBudgetConfig_BudgetDefaults(t *testing.T) {
	defaults := BudgetConfig{MonthlyBudget: "1500.50", SpendingPercentage: "80", LifestyleLimit: "bad"}.BudgetDefaults()

	assert.Equal(t, int64(150050), int64(defaults.MonthlyBudget))
	assert.Equal(t, "80", defaults.SpendingPercentage.String())
	assert.Equal(t, "70", defaults.LifestyleLimit.String())
}
