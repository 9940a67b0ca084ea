package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Bookmark persistence backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (ex: 5s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataFile   string // path to the .xlsx workbook (required)
	SchemaFile string // optional YAML collection schema, empty = embedded default

	BookmarkBackend string // "file" | "redis" | "sqlite"
	BookmarkFile    string // JSON file for the file backend
	SQLitePath      string // database path for the sqlite backend, ":memory:" allowed

	SessionTTL           time.Duration // idle time before a session is dropped (ex: 30m)
	SessionSweepInterval time.Duration // interval between idle session sweeps (ex: 5m)
	SecureCookie         bool          // true => session cookie only sent over HTTPS

	// Redis (bookmark backend "redis" only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisKeyPrefix        string        // ex: "csfinder:"
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst  int // token bucket size per client IP on /api
	RateLimitRefill int // tokens added per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CSFINDER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CSFINDER_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CSFINDER_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("CSFINDER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CSFINDER_PRETTY_LOG", true),

		// Data source
		DataFile:   requireEnv("CSFINDER_DATA_FILE"),
		SchemaFile: getenv("CSFINDER_SCHEMA_FILE", ""),

		// Bookmarks
		BookmarkBackend: requireOneOf("CSFINDER_BOOKMARK_BACKEND", BackendFile, BackendFile, BackendRedis, BackendSQLite),
		BookmarkFile:    getenv("CSFINDER_BOOKMARK_FILE", "bookmarks.json"),
		SQLitePath:      getenv("CSFINDER_SQLITE_PATH", "bookmarks.db"),

		// Sessions
		SessionTTL:           mustDuration("CSFINDER_SESSION_TTL", 30*time.Minute),
		SessionSweepInterval: mustDuration("CSFINDER_SESSION_SWEEP_INTERVAL", 5*time.Minute),
		SecureCookie:         mustBool("CSFINDER_SECURE_COOKIE", false),

		// Redis settings
		RedisAddr:             getenv("CSFINDER_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("CSFINDER_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CSFINDER_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("CSFINDER_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CSFINDER_REDIS_DB", 0),
		RedisKeyPrefix:        getenv("CSFINDER_REDIS_KEY_PREFIX", "csfinder:"),
		RedisDT:               mustDuration("CSFINDER_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("CSFINDER_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("CSFINDER_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("CSFINDER_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("CSFINDER_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("CSFINDER_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("CSFINDER_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("CSFINDER_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("CSFINDER_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CSFINDER_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("CSFINDER_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CSFINDER_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("CSFINDER_RATE_LIMIT_BURST", 60),
		RateLimitRefill: getenvInt("CSFINDER_RATE_LIMIT_REFILL", 120),
	}

	// Validate Redis password configuration
	if cfg.BookmarkBackend == BackendRedis && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: CSFINDER_REDIS_PASSWORD is required when CSFINDER_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// requireOneOf returns the value of key, or def when unset.
// Any value outside allowed panics.
func requireOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(getenv(key, def)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %q (allowed: %s)", key, v, strings.Join(allowed, ", ")))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
