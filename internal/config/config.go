package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza la configuración cargada del entorno.
type Config struct {
	Port            int
	DBDSN           string
	RedisURL        string
	JWTSecret       string
	CatalogoPath    string
	AllowOrigins    []string
	CacheTTL        time.Duration
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	Storage         StorageConfig
}

// RateLimitConfig representa límites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// StorageConfig describe el backend S3 para firmas y evidencias.
// Si Bucket está vacío, el uploader queda deshabilitado (noop).
type StorageConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	PublicDomain string
}

// Load carga variables de entorno y aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN obligatorio")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obligatorio")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET debe tener al menos 32 caracteres")
	}

	cfg.CatalogoPath = strings.TrimSpace(getEnv("CATALOGO_PATH", "catalogo.json"))
	if cfg.CatalogoPath == "" {
		return nil, errors.New("CATALOGO_PATH obligatorio")
	}

	cacheTTL, err := parseDurationEnv("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = cacheTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	cfg.Storage = StorageConfig{
		Endpoint:     strings.TrimSpace(getEnv("S3_ENDPOINT", "")),
		Region:       strings.TrimSpace(getEnv("S3_REGION", "auto")),
		Bucket:       strings.TrimSpace(getEnv("S3_BUCKET", "")),
		AccessKey:    strings.TrimSpace(getEnv("S3_ACCESS_KEY", "")),
		SecretKey:    strings.TrimSpace(getEnv("S3_SECRET_KEY", "")),
		PublicDomain: strings.TrimSpace(getEnv("S3_PUBLIC_DOMAIN", "")),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
