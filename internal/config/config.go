package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"

	AuthProviderSupabase = "supabase"
	AuthProviderLocal    = "local"
)

type Config struct {
	App        AppConfig
	Backend    string
	Database   DatabaseConfig
	Supabase   SupabaseConfig
	Auth       AuthConfig
	JWT        JWTConfig
	Redis      RedisConfig
	HiringRate HiringRateConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type SupabaseConfig struct {
	URL       string
	Key       string
	JWTSecret string
}

type AuthConfig struct {
	Provider          string
	AdminEmail        string
	AdminPasswordHash string
	AllowedEmails     []string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	DashboardTTL time.Duration
}

type HiringRateConfig struct {
	Async   bool
	Timeout time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := parseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}
	flag := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Backend = strings.ToLower(opt("DATA_BACKEND"))
	if cfg.Backend == "" {
		cfg.Backend = BackendPostgres
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:          num("DB_POOL_MAX_CONNS"),
		PoolMinConns:          num("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Supabase = SupabaseConfig{
		URL:       opt("SUPABASE_URL"),
		Key:       opt("SUPABASE_KEY"),
		JWTSecret: opt("SUPABASE_JWT_SECRET"),
	}

	cfg.Auth = AuthConfig{
		Provider:          strings.ToLower(opt("AUTH_PROVIDER")),
		AdminEmail:        strings.ToLower(opt("ADMIN_EMAIL")),
		AdminPasswordHash: opt("ADMIN_PASSWORD_HASH"),
		AllowedEmails:     splitList(opt("ADMIN_EMAILS")),
	}
	if cfg.Auth.Provider == "" {
		cfg.Auth.Provider = AuthProviderLocal
		if cfg.Backend == BackendSupabase {
			cfg.Auth.Provider = AuthProviderSupabase
		}
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:         opt("REDIS_HOST"),
		Port:         opt("REDIS_PORT"),
		Password:     opt("REDIS_PASSWORD"),
		DB:           int(num("REDIS_DB")),
		DashboardTTL: dur("DASHBOARD_CACHE_TTL", 30*time.Second),
	}

	cfg.HiringRate = HiringRateConfig{
		Async:   flag("HIRING_RATE_ASYNC", true),
		Timeout: dur("HIRING_RATE_TIMEOUT", 10*time.Second),
	}

	switch cfg.Backend {
	case BackendPostgres:
		req("DB_HOST")
		req("DB_PORT")
		req("DB_NAME")
		req("DB_USER")
	case BackendSupabase:
		req("SUPABASE_URL")
		req("SUPABASE_KEY")
	default:
		invalid = append(invalid, "DATA_BACKEND")
	}

	switch cfg.Auth.Provider {
	case AuthProviderSupabase:
		req("SUPABASE_URL")
		req("SUPABASE_KEY")
		req("SUPABASE_JWT_SECRET")
	case AuthProviderLocal:
		req("ADMIN_EMAIL")
		req("ADMIN_PASSWORD_HASH")
		req("JWT_ACCESS_SECRET")
		req("JWT_REFRESH_SECRET")
	default:
		invalid = append(invalid, "AUTH_PROVIDER")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(dedupe(missing), ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(dedupe(invalid), ", "))
	}

	return cfg, nil
}

// parseDuration accepts Go durations ("30s") and bare seconds ("30").
func parseDuration(raw string) (time.Duration, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative duration: %s", raw)
		}
		return time.Duration(v) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration: %s", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
