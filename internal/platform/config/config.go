package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	LogLevel    string
	DatabaseURL string
	Redis       RedisConfig
	Auth        AuthConfig
	RateLimits  RateLimitConfig
	Report      ReportConfig
}

// RedisConfig configures the optional shared counter store.
// An empty URL keeps rate-limit windows in process memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig verifies bearer tokens issued by the identity provider.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
}

// OperationLimit caps how often one actor may run an operation per window.
type OperationLimit struct {
	MaxOps        int
	WindowMinutes int
}

// RateLimitConfig maps operation names to their limits. Operations not listed
// fall back to Default.
type RateLimitConfig struct {
	Default    OperationLimit
	Operations map[string]OperationLimit
	// SweepInterval controls how often expired in-memory windows are dropped.
	SweepInterval time.Duration
}

// For returns the limit for an operation.
func (c RateLimitConfig) For(operation string) OperationLimit {
	if l, ok := c.Operations[operation]; ok {
		return l
	}
	return c.Default
}

// ReportConfig holds the security report thresholds.
type ReportConfig struct {
	BurstThreshold        int
	AccessDeniedThreshold int
	DistinctIPThreshold   int
	TopActors             int
	// FailureRatio is the failed-action share above which the report recommends a review.
	FailureRatio float64
	DetectBots   bool
}

// DefaultRateLimits are the per-operation limits used when no override is set.
func DefaultRateLimits() RateLimitConfig {
	return RateLimitConfig{
		Default: OperationLimit{MaxOps: 60, WindowMinutes: 1},
		Operations: map[string]OperationLimit{
			"save_answers":    {MaxOps: 10, WindowMinutes: 60},
			"update_profile":  {MaxOps: 20, WindowMinutes: 60},
			"task_transition": {MaxOps: 100, WindowMinutes: 60},
			"attach_evidence": {MaxOps: 30, WindowMinutes: 60},
			"security_report": {MaxOps: 10, WindowMinutes: 60},
		},
		SweepInterval: 5 * time.Minute,
	}
}

// DefaultReport mirrors the thresholds the reporter was tuned with.
func DefaultReport() ReportConfig {
	return ReportConfig{
		BurstThreshold:        50,
		AccessDeniedThreshold: 5,
		DistinctIPThreshold:   3,
		TopActors:             10,
		FailureRatio:          0.10,
		DetectBots:            true,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ADEQUA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	limits := DefaultRateLimits()
	if v := envInt("RATE_LIMIT_SAVE_ANSWERS", 0); v > 0 {
		l := limits.Operations["save_answers"]
		l.MaxOps = v
		limits.Operations["save_answers"] = l
	}
	limits.SweepInterval = envDuration("RATE_LIMIT_SWEEP_INTERVAL", limits.SweepInterval)

	report := DefaultReport()
	report.BurstThreshold = envInt("REPORT_BURST_THRESHOLD", report.BurstThreshold)
	report.AccessDeniedThreshold = envInt("REPORT_ACCESS_DENIED_THRESHOLD", report.AccessDeniedThreshold)
	report.DistinctIPThreshold = envInt("REPORT_DISTINCT_IP_THRESHOLD", report.DistinctIPThreshold)
	report.TopActors = envInt("REPORT_TOP_ACTORS", report.TopActors)
	report.FailureRatio = envFloat("REPORT_FAILURE_RATIO", report.FailureRatio)
	report.DetectBots = envBool("REPORT_DETECT_BOTS", report.DetectBots)

	return Server{
		Addr:        addr,
		LogLevel:    strings.ToLower(os.Getenv("LOG_LEVEL")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			JWTSigningKey: jwtSigningKey,
			JWTIssuer:     os.Getenv("JWT_ISSUER"),
		},
		RateLimits: limits,
		Report:     report,
	}
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
