package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ADEQUA_ADDR", "")
	t.Setenv("JWT_SIGNING_KEY", "")
	t.Setenv("REDIS_URL", "")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotEmpty(t, cfg.Auth.JWTSigningKey)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 50, cfg.Report.BurstThreshold)
	assert.Equal(t, 5*time.Minute, cfg.RateLimits.SweepInterval)
	assert.InDelta(t, 0.10, cfg.Report.FailureRatio, 1e-9)
	assert.True(t, cfg.Report.DetectBots)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADEQUA_ADDR", ":9090")
	t.Setenv("RATE_LIMIT_SAVE_ANSWERS", "3")
	t.Setenv("REPORT_BURST_THRESHOLD", "100")
	t.Setenv("REDIS_DIAL_TIMEOUT", "250ms")
	t.Setenv("REPORT_FAILURE_RATIO", "0.25")
	t.Setenv("REPORT_DETECT_BOTS", "false")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3, cfg.RateLimits.For("save_answers").MaxOps)
	assert.Equal(t, 60, cfg.RateLimits.For("save_answers").WindowMinutes)
	assert.Equal(t, 100, cfg.Report.BurstThreshold)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.DialTimeout)
	assert.InDelta(t, 0.25, cfg.Report.FailureRatio, 1e-9)
	assert.False(t, cfg.Report.DetectBots)
}

func TestRateLimitFallsBackToDefault(t *testing.T) {
	limits := DefaultRateLimits()
	assert.Equal(t, limits.Default, limits.For("unknown_operation"))
}
