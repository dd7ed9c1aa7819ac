package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers the server can be started with
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"prod"`

	APIListenAddress   string        `default:":8081" split_words:"true"`
	APIAllowedOrigins  []string      `default:"http://localhost:3000" split_words:"true"`
	APIMaxPageLimit    int           `default:"100" split_words:"true"`
	APIRateLimitRPS    float64       `default:"20" split_words:"true"`
	APIRateLimitBurst  int           `default:"40" split_words:"true"`
	APIShutdownTimeout time.Duration `default:"10s" split_words:"true"`

	StorageDriver string `default:"memory" split_words:"true"`
	PostgresDSN   string `default:"" split_words:"true"`
	SeedMockData  bool   `default:"true" split_words:"true"`

	CacheEnabled         bool          `default:"true" split_words:"true"`
	CacheLifetime        time.Duration `default:"5m" split_words:"true"`
	CacheCleanupInterval time.Duration `default:"1m" split_words:"true"`
	CacheRedisAddress    string        `default:"" split_words:"true"`
	CacheRedisPassword   string        `default:"" split_words:"true"`
	CacheRedisDB         int           `default:"0" split_words:"true"`

	SignupMaxAccountsPerIP int `default:"2" split_words:"true"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == "prod"
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("videra", config); err != nil {
		return nil, err
	}
	return config, nil
}
