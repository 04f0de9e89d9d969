// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	StorageDriver string
	SQLitePath    string
	DBDSN         string
	DBTimeout     time.Duration

	JWTSecret string
	ClientTTL time.Duration

	AICBaseURL       string
	MetBaseURL       string
	MuseumUserAgent  string
	MuseumRPS        int
	MuseumMaxRetries int
	MuseumTimeout    time.Duration
	CatalogLimit     int
	FetchConcurrency int
	GalleryPageSize  int

	RateLimitRPS   float64
	RateLimitBurst int
	CORSOrigins    []string
	EnableHSTS     bool
	MaxBodyBytes   int64
}

// LoadEnvFiles reads .env then .env.local from the working directory.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the server configuration from the environment. Call
// LoadEnvFiles first to pick up env files.
func Load() (Config, error) {
	return load(true)
}

// LoadTools is Load for offline tools that never issue tokens, so
// JWT_SECRET is optional.
func LoadTools() (Config, error) {
	return load(false)
}

func load(requireSecret bool) (Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := Config{
		Addr:            getEnv("APP_ADDR", ":8080"),
		Env:             getEnv("APP_ENV", "production"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:      getEnv("SQLITE_PATH", "data/curator.db"),
		DBDSN:           os.Getenv("DB_DSN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AICBaseURL:      getEnv("AIC_BASE_URL", "https://api.artic.edu/api/v1"),
		MetBaseURL:      getEnv("MET_BASE_URL", "https://collectionapi.metmuseum.org/public/collection/v1"),
		MuseumUserAgent: getEnv("MUSEUM_USER_AGENT", "curator/1.0"),
		CORSOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	var err error
	cfg.DBTimeout, err = getDuration("DB_TIMEOUT", 3*time.Second)
	collect(err)
	cfg.ClientTTL, err = getDuration("CLIENT_TOKEN_TTL", 30*24*time.Hour)
	collect(err)
	cfg.MuseumRPS, err = getInt("MUSEUM_RPS", 5)
	collect(err)
	cfg.MuseumMaxRetries, err = getInt("MUSEUM_MAX_RETRIES", 0)
	collect(err)
	cfg.MuseumTimeout, err = getDuration("MUSEUM_TIMEOUT", 15*time.Second)
	collect(err)
	cfg.CatalogLimit, err = getInt("CATALOG_LIMIT", 50)
	collect(err)
	cfg.FetchConcurrency, err = getInt("FETCH_CONCURRENCY", 10)
	collect(err)
	cfg.GalleryPageSize, err = getInt("GALLERY_PAGE_SIZE", 12)
	collect(err)
	cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 10)
	collect(err)
	cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 20)
	collect(err)
	cfg.EnableHSTS, err = getBool("ENABLE_HSTS", false)
	collect(err)
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	collect(err)
	cfg.MaxBodyBytes = int64(maxBody)

	if requireSecret && cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch cfg.StorageDriver {
	case "memory", "sqlite":
	case "postgres":
		if cfg.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when STORAGE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be memory, sqlite or postgres, got %q", cfg.StorageDriver))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
