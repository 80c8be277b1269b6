package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	TargetSSID         string // network name that activates the redirect (exact match, "" = no network)
	RedirectHostPrefix string // prepended to the request path, ex: http://192.168.1.215

	NetworkSource  string        // "static" | "file" | "redis"
	StaticSSID     string        // SSID reported by the static source
	NetworkFile    string        // YAML status file read by the file source
	ReloadInterval time.Duration // how often file/redis sources are re-read

	InterceptHosts []string // optional, only these Host headers are intercepted (supports *.domain)
	AllowedCIDRS   []string // optional, restrict API/admin endpoints to these IPs/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For headers
	RateBurst      int      // per-IP burst on intercepted requests
	RatePerMin     int      // per-IP refill rate on intercepted requests

	// Redis (optional unless NetworkSource == "redis")
	RedisAddr           string        // ex: "localhost:6379", empty disables redis
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, doubled each attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("WIFIJUMP_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("WIFIJUMP_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("WIFIJUMP_LOG_LEVEL", "info"),
		PrettyLog: mustBool("WIFIJUMP_PRETTY_LOG", true),

		// Redirect rule
		TargetSSID:         requireSetEnv("WIFIJUMP_TARGET_SSID"),
		RedirectHostPrefix: requireEnv("WIFIJUMP_REDIRECT_HOST_PREFIX"),

		// Network introspection
		NetworkSource:  strings.ToLower(getenv("WIFIJUMP_NETWORK_SOURCE", "static")),
		StaticSSID:     os.Getenv("WIFIJUMP_STATIC_SSID"),
		NetworkFile:    getenv("WIFIJUMP_NETWORK_FILE", "/run/wifijump/network.yaml"),
		ReloadInterval: mustDuration("WIFIJUMP_RELOAD_INTERVAL", 5*time.Second),

		// Access
		InterceptHosts: splitAndTrim(getenv("WIFIJUMP_INTERCEPT_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("WIFIJUMP_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("WIFIJUMP_TRUST_PROXY", false),
		RateBurst:      getenvInt("WIFIJUMP_RATE_BURST", 60),
		RatePerMin:     getenvInt("WIFIJUMP_RATE_PER_MIN", 600),

		// Redis settings
		RedisAddr:           getenv("WIFIJUMP_REDIS_ADDR", ""),
		RedisUser:           getenv("WIFIJUMP_REDIS_USERNAME", ""),
		RedisPassword:       getenv("WIFIJUMP_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("WIFIJUMP_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks values that cannot be fixed with a default.
func (c *Config) Validate() error {
	if err := validatePrefix(c.RedirectHostPrefix); err != nil {
		return err
	}

	switch c.NetworkSource {
	case "static", "file":
	case "redis":
		if !c.RedisEnabled() {
			return fmt.Errorf("WIFIJUMP_REDIS_ADDR is required when WIFIJUMP_NETWORK_SOURCE=redis")
		}
	default:
		return fmt.Errorf("unsupported WIFIJUMP_NETWORK_SOURCE %q (want static, file or redis)", c.NetworkSource)
	}

	if c.ReloadInterval <= 0 {
		return fmt.Errorf("WIFIJUMP_RELOAD_INTERVAL must be > 0, got %v", c.ReloadInterval)
	}
	return nil
}

// validatePrefix requires an absolute URL with no path. The prefix is
// concatenated verbatim with the request path, so even a trailing slash
// would double up.
func validatePrefix(prefix string) error {
	u, err := url.Parse(prefix)
	if err != nil {
		return fmt.Errorf("invalid WIFIJUMP_REDIRECT_HOST_PREFIX %q: %w", prefix, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WIFIJUMP_REDIRECT_HOST_PREFIX %q must include scheme and host", prefix)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return fmt.Errorf("WIFIJUMP_REDIRECT_HOST_PREFIX %q must not carry a path, query or fragment", prefix)
	}
	return nil
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

// requireSetEnv is requireEnv for values where "" is meaningful: the
// variable must exist, but may be empty.
func requireSetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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
