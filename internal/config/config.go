package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Store     StoreConfig     `json:"store"`
	Postgres  PostgresConfig  `json:"postgres"`
	Firestore FirestoreConfig `json:"firestore"`
	Redis     RedisConfig     `json:"redis"`
	Routing   RoutingConfig   `json:"routing"`
	Media     MediaConfig     `json:"media"`
	Auth      AuthConfig      `json:"auth"`
	Webhook   WebhookConfig   `json:"webhook"`
	Bounds    GeoBounds       `json:"bounds"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// StoreConfig selects the ticket store adapter.
type StoreConfig struct {
	Backend string `json:"backend"` // postgres | firestore | memory
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type FirestoreConfig struct {
	ProjectID      string `json:"project_id"`
	Collection     string `json:"collection"`
	CredentialsB64 string `json:"-"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type RoutingConfig struct {
	BaseURL       string        `json:"base_url"`
	LookupTimeout time.Duration `json:"lookup_timeout"`
	CacheTTL      time.Duration `json:"cache_ttl"`
}

type MediaConfig struct {
	Endpoint      string `json:"endpoint"`
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"-"`
	Bucket        string `json:"bucket"`
	UseSSL        bool   `json:"use_ssl"`
	PublicBaseURL string `json:"public_base_url"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	APIKey    string `json:"-"`
}

type WebhookConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

// GeoBounds is the service area used for the soft location check at
// ticket creation. Defaults cover Bolivia.
type GeoBounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

func (b GeoBounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "postgres"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "pawguard_db"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Firestore: FirestoreConfig{
			ProjectID:      getEnv("FIRESTORE_PROJECT_ID", ""),
			Collection:     getEnv("FIRESTORE_COLLECTION", "rescues"),
			CredentialsB64: getEnv("FIREBASE_CREDENTIALS", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Routing: RoutingConfig{
			BaseURL:       getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org"),
			LookupTimeout: getEnvDuration("ROUTING_LOOKUP_TIMEOUT", 15*time.Second),
			CacheTTL:      getEnvDuration("ROUTING_CACHE_TTL", 5*time.Minute),
		},
		Media: MediaConfig{
			Endpoint:      getEnv("MEDIA_ENDPOINT", "minio-local:9000"),
			AccessKey:     getEnv("MEDIA_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MEDIA_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MEDIA_BUCKET", "rescue-evidence"),
			UseSSL:        getEnvBool("MEDIA_USE_SSL", false),
			PublicBaseURL: getEnv("MEDIA_PUBLIC_BASE_URL", "http://minio-local:9000"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			APIKey:    getEnv("API_KEY", ""),
		},
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", false),
		},
		Bounds: GeoBounds{
			MinLat: getEnvFloat("BOUNDS_MIN_LAT", -22.9),
			MaxLat: getEnvFloat("BOUNDS_MAX_LAT", -9.7),
			MinLng: getEnvFloat("BOUNDS_MIN_LNG", -69.7),
			MaxLng: getEnvFloat("BOUNDS_MAX_LNG", -57.5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Store.Backend {
	case "postgres":
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case "firestore":
		if c.Firestore.ProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID required")
		}
	case "memory":
	default:
		return errors.New("STORE_BACKEND must be postgres, firestore or memory")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.Bounds.MinLat >= c.Bounds.MaxLat || c.Bounds.MinLng >= c.Bounds.MaxLng {
		return errors.New("invalid service bounds")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
