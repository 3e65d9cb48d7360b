package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr       string
	BaseDomain string

	RateLimit RateLimitConfig
	Audit     AuditConfig

	PostgresURL string
	Redis       RedisConfig
}

// RateLimitConfig bounds provisioning attempts per client.
type RateLimitConfig struct {
	Attempts int
	Window   time.Duration
}

// AuditConfig controls the audit trail surfaces.
type AuditConfig struct {
	// RecentLimit is the default page size for the recent-events endpoint.
	RecentLimit int
	// KafkaBrokers and KafkaTopic configure the mirror sink. Empty brokers
	// disable mirroring.
	KafkaBrokers []string
	KafkaTopic   string
}

// RedisConfig configures the optional Redis-backed rate limit store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SUBGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseDomain := os.Getenv("SUBGUARD_BASE_DOMAIN")
	if baseDomain == "" {
		baseDomain = "webai.studio"
	}

	return Server{
		Addr:       addr,
		BaseDomain: baseDomain,
		RateLimit: RateLimitConfig{
			Attempts: envInt("SUBGUARD_RATE_LIMIT_ATTEMPTS", 5),
			Window:   envDuration("SUBGUARD_RATE_LIMIT_WINDOW", time.Hour),
		},
		Audit: AuditConfig{
			RecentLimit:  envInt("SUBGUARD_AUDIT_RECENT_LIMIT", 10),
			KafkaBrokers: envList("SUBGUARD_AUDIT_KAFKA_BROKERS"),
			KafkaTopic:   envString("SUBGUARD_AUDIT_KAFKA_TOPIC", "subguard.audit"),
		},
		PostgresURL: os.Getenv("SUBGUARD_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("SUBGUARD_REDIS_URL"),
			PoolSize:     envInt("SUBGUARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SUBGUARD_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("SUBGUARD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("SUBGUARD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("SUBGUARD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
