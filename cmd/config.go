package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"dronedelivery/internal/adapters/out/ilp"
	"dronedelivery/internal/adapters/out/rediscache"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/services"
	"dronedelivery/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort    = "8080"
	defaultServiceID   = "s0000000"
	defaultILPEndpoint = "https://ilp-rest-2024.azurewebsites.net"

	// Appleton Tower.
	defaultDropOffLng = -3.186874
	defaultDropOffLat = 55.944494
)

type Config struct {
	HTTPPort          string
	ServiceID         string
	ILPEndpoint       string
	ILPTimeout        time.Duration
	RegionRefreshCron string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PathCacheTTL      time.Duration
	MaxExpansions     int
	DropOff           kernel.Position
	LogLevel          string
	LogFormat         string
}

// LoadConfig reads the configuration from the environment. Variables found in
// envFile are added first without overriding the environment; a missing file
// is not an error.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:          p.string("HTTP_PORT", defaultHTTPPort),
		ServiceID:         p.string("SERVICE_ID", defaultServiceID),
		ILPEndpoint:       p.string("ILP_ENDPOINT", defaultILPEndpoint),
		ILPTimeout:        p.duration("ILP_TIMEOUT", ilp.DefaultTimeout),
		RegionRefreshCron: p.string("REGION_REFRESH_CRON", jobs.DefaultRegionRefreshSchedule),
		RedisAddr:         p.string("REDIS_ADDR", ""),
		RedisPassword:     p.string("REDIS_PASSWORD", ""),
		RedisDB:           p.int("REDIS_DB", 0),
		PathCacheTTL:      p.duration("PATH_CACHE_TTL", rediscache.DefaultTTL),
		MaxExpansions:     p.int("MAX_EXPANSIONS", services.DefaultMaxExpansions),
		LogLevel:          p.string("LOG_LEVEL", "info"),
		LogFormat:         p.string("LOG_FORMAT", "text"),
	}

	lng := p.float("DROP_OFF_LNG", defaultDropOffLng)
	lat := p.float("DROP_OFF_LAT", defaultDropOffLat)
	if p.err != nil {
		return Config{}, p.err
	}

	dropOff, err := kernel.NewPosition(lng, lat)
	if err != nil {
		return Config{}, fmt.Errorf("DROP_OFF_LNG/DROP_OFF_LAT: %w", err)
	}
	cfg.DropOff = dropOff

	if cfg.ILPTimeout <= 0 {
		return Config{}, fmt.Errorf("ILP_TIMEOUT must be positive, got %s", cfg.ILPTimeout)
	}
	if cfg.RedisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must not be negative, got %d", cfg.RedisDB)
	}
	return cfg, nil
}

// envParser remembers the first malformed variable so the caller checks once.
type envParser struct {
	getenv func(string) string
	err    error
}

func (p *envParser) string(key, fallback string) string {
	if v := p.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) int(key string, fallback int) int {
	v := p.getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *envParser) float(key string, fallback float64) float64 {
	v := p.getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	v := p.getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

func (p *envParser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}
