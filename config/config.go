package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
)

// Config holds all runtime configuration, read from the environment.
type Config struct {
	Port string
	Env  string

	DatabaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	DBMaxConns       int32
	DBMinConns       int32

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	AllowedOrigins     []string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int

	DashboardLocation *time.Location
	DashboardCacheTTL time.Duration

	AWSUseSecrets       bool
	DBSecretName        string
	OrderEventsTopicARN string
	ProductImagesBucket string
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "3333"),
		Env:                 getEnv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:          os.Getenv("POSTGRES_DB"),
		PostgresHost:        getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		DBMaxConns:          int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:          int32(getEnvInt("DB_MIN_CONNS", 2)),
		RedisURL:            os.Getenv("REDIS_URL"),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:              getEnvDuration("JWT_TTL", 7*24*time.Hour),
		AllowedOrigins:      splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 50),
		DashboardCacheTTL:   getEnvDuration("DASHBOARD_CACHE_TTL", time.Minute),
		AWSUseSecrets:       os.Getenv("AWS_USE_SECRETS") == "true",
		DBSecretName:        getEnv("DB_SECRET_NAME", "olive-beauty/DB_CREDENTIALS"),
		OrderEventsTopicARN: os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		ProductImagesBucket: os.Getenv("PRODUCT_IMAGES_BUCKET"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "OliveBeauty"),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", "/olive-beauty/api"),
	}

	loc, err := time.LoadLocation(getEnv("DASHBOARD_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE: %w", err)
	}
	cfg.DashboardLocation = loc

	// Override DB credentials from Secrets Manager when running on AWS
	if cfg.AWSUseSecrets {
		cfg.applyDBSecret(context.Background())
	}

	if cfg.DatabaseURL == "" && (cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "") {
		return nil, fmt.Errorf("database config incomplete: set DATABASE_URL or POSTGRES_USER/POSTGRES_PASSWORD/POSTGRES_DB")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN returns DATABASE_URL or builds one from the POSTGRES_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     c.PostgresDB,
		RawQuery: "sslmode=" + c.PostgresSSLMode,
	}
	return u.String()
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) applyDBSecret(ctx context.Context) {
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		zap.L().Warn("AWS config unavailable, keeping env DB credentials", zap.Error(err))
		return
	}
	m, err := awspkg.NewSecretsClient(awsCfg).GetSecretMap(ctx, c.DBSecretName)
	if err != nil {
		zap.L().Warn("DB secret unavailable, keeping env DB credentials", zap.Error(err))
		return
	}
	overrideDBCredentials(c, m)
}

func overrideDBCredentials(c *Config, m map[string]string) {
	if v := m["DATABASE_URL"]; v != "" {
		c.DatabaseURL = v
	}
	if v := m["POSTGRES_USER"]; v != "" {
		c.PostgresUser = v
	}
	if v := m["POSTGRES_PASSWORD"]; v != "" {
		c.PostgresPassword = v
	}
	if v := m["POSTGRES_DB"]; v != "" {
		c.PostgresDB = v
	}
	if v := m["POSTGRES_HOST"]; v != "" {
		c.PostgresHost = v
	}
	if v := m["POSTGRES_PORT"]; v != "" {
		c.PostgresPort = v
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(o), "/"))
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
