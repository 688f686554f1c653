package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// ServerCfg is http server configuration
type ServerCfg struct {
	Port            int           `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// PostgresCfg is PostgreSQL connectivity configuration
type PostgresCfg struct {
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB"`
	Host        string `env:"POSTGRES_HOST" envDefault:"pg-customers"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

// MongoCfg is MongoDB connectivity configuration
type MongoCfg struct {
	User        string `env:"MONGO_USER"`
	Password    string `env:"MONGO_PASSWORD"`
	Host        string `env:"MONGO_HOST" envDefault:"mongo-customers"`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// RedisCfg is Redis connectivity configuration
type RedisCfg struct {
	Password string `env:"REDIS_PASSWORD"`
	Host     string `env:"REDIS_HOST" envDefault:"redis-customers"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// GeocodingCfg is forward geocoding provider configuration
type GeocodingCfg struct {
	BaseURL string        `env:"GEOCODING_BASE_URL" envDefault:"http://api.positionstack.com"`
	APIKey  string        `env:"GEOCODING_API_KEY"`
	Timeout time.Duration `env:"GEOCODING_TIMEOUT" envDefault:"5s"`
}

// Config is application configuration
type Config struct {
	ServerCfg    ServerCfg
	PostgresCfg  PostgresCfg
	MongoCfg     MongoCfg
	RedisCfg     RedisCfg
	GeocodingCfg GeocodingCfg
}

// Build parses application configuration out of environment
func Build() (Config, error) {
	var cfg Config
	opts := env.Options{RequiredIfNoDef: true}

	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}
