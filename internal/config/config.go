package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds every runtime setting of the server. Values come from the
// process environment, optionally seeded from a .env file.
type Config struct {
	Port        string
	LogLevel    string
	Development bool

	OpenCageAPIKey  string
	OpenCageBaseURL string

	TomTomAPIKey  string
	TomTomBaseURL string
	TomTomZoom    int
	TrafficQPS    float64

	OverpassURL         string
	NetworkTimeout      time.Duration
	NetworkRadiusMeters float64
	MaxCandidates       int

	HTTPClientTimeout time.Duration

	GeocodeCache string
	DatabaseURL  string
	DBPath       string

	SessionStore string
	RedisAddr    string
	SessionTTL   time.Duration

	DefaultStart string
	DefaultEnd   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVELOPMENT", false)

	v.SetDefault("OPENCAGE_BASE_URL", "https://api.opencagedata.com")
	v.SetDefault("TOMTOM_BASE_URL", "https://api.tomtom.com")
	v.SetDefault("TOMTOM_ZOOM", 10)
	v.SetDefault("TRAFFIC_QPS", 5.0)

	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("NETWORK_TIMEOUT", "180s")
	v.SetDefault("NETWORK_RADIUS_METERS", 15000.0)
	v.SetDefault("MAX_CANDIDATES", 0)

	v.SetDefault("HTTP_CLIENT_TIMEOUT", "10s")

	v.SetDefault("GEOCODE_CACHE", "none")
	v.SetDefault("DB_PATH", "data/app.db")

	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("SESSION_TTL", "24h")

	v.SetDefault("DEFAULT_START", "MG Road, Bangalore")
	v.SetDefault("DEFAULT_END", "Whitefield, Bangalore")
}

// Load reads .env (if present) and the environment into a validated Config.
func Load(log *zap.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Development: v.GetBool("DEVELOPMENT"),

		OpenCageAPIKey:  strings.TrimSpace(v.GetString("OPENCAGE_API_KEY")),
		OpenCageBaseURL: strings.TrimRight(v.GetString("OPENCAGE_BASE_URL"), "/"),

		TomTomAPIKey:  strings.TrimSpace(v.GetString("TOMTOM_API_KEY")),
		TomTomBaseURL: strings.TrimRight(v.GetString("TOMTOM_BASE_URL"), "/"),
		TomTomZoom:    v.GetInt("TOMTOM_ZOOM"),
		TrafficQPS:    v.GetFloat64("TRAFFIC_QPS"),

		OverpassURL:         v.GetString("OVERPASS_URL"),
		NetworkTimeout:      v.GetDuration("NETWORK_TIMEOUT"),
		NetworkRadiusMeters: v.GetFloat64("NETWORK_RADIUS_METERS"),
		MaxCandidates:       v.GetInt("MAX_CANDIDATES"),

		HTTPClientTimeout: v.GetDuration("HTTP_CLIENT_TIMEOUT"),

		GeocodeCache: strings.ToLower(strings.TrimSpace(v.GetString("GEOCODE_CACHE"))),
		DatabaseURL:  strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBPath:       v.GetString("DB_PATH"),

		SessionStore: strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE"))),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),

		DefaultStart: v.GetString("DEFAULT_START"),
		DefaultEnd:   v.GetString("DEFAULT_END"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required keys and value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.OpenCageAPIKey == "" {
		errs = append(errs, errors.New("OPENCAGE_API_KEY is required"))
	}
	if c.TomTomAPIKey == "" {
		errs = append(errs, errors.New("TOMTOM_API_KEY is required"))
	}
	if c.NetworkRadiusMeters <= 0 {
		errs = append(errs, fmt.Errorf("NETWORK_RADIUS_METERS must be positive, got %v", c.NetworkRadiusMeters))
	}
	if c.NetworkTimeout <= 0 {
		errs = append(errs, fmt.Errorf("NETWORK_TIMEOUT must be positive, got %v", c.NetworkTimeout))
	}
	if c.HTTPClientTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive, got %v", c.HTTPClientTimeout))
	}
	if c.MaxCandidates < 0 {
		errs = append(errs, fmt.Errorf("MAX_CANDIDATES must not be negative, got %d", c.MaxCandidates))
	}
	if c.TrafficQPS < 0 {
		errs = append(errs, fmt.Errorf("TRAFFIC_QPS must not be negative, got %v", c.TrafficQPS))
	}
	if c.TomTomZoom < 0 || c.TomTomZoom > 22 {
		errs = append(errs, fmt.Errorf("TOMTOM_ZOOM must be between 0 and 22, got %d", c.TomTomZoom))
	}

	switch c.GeocodeCache {
	case "none", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when GEOCODE_CACHE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE must be one of none, postgres, sqlite; got %q", c.GeocodeCache))
	}

	switch c.SessionStore {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be memory or redis; got %q", c.SessionStore))
	}

	return errors.Join(errs...)
}

// Get returns an environment value through viper, or fallback when unset.
func Get(key, fallback string) string {
	v := viper.New()
	v.AutomaticEnv()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}
