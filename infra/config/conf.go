package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mstgnz/checkout/infra/validate"
)

// Config holds process wide helpers
type Config struct {
	Validator *validator.Validate
}

// AppConfig represents the application configuration
type AppConfig struct {
	Port        string `env:"APP_PORT" envDefault:"9999"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOGGING_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	APIKey      string `env:"API_KEY"`
	PublicURL   string `env:"APP_URL" envDefault:"http://localhost:9999"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/checkout.db"`

	BridgeURL     string        `env:"WEBTOPAY_BRIDGE_URL" envDefault:"http://localhost:8088"`
	BridgeTimeout time.Duration `env:"WEBTOPAY_BRIDGE_TIMEOUT" envDefault:"20s"`

	MethodsCacheSize int           `env:"METHODS_CACHE_SIZE" envDefault:"500"`
	MethodsCacheTTL  time.Duration `env:"METHODS_CACHE_TTL" envDefault:"10m"`

	OpenSearchURL  string `env:"OPENSEARCH_URL" envDefault:"http://localhost:9200"`
	OpenSearchUser string `env:"OPENSEARCH_USER"`
	OpenSearchPass string `env:"OPENSEARCH_PASSWORD"`
	EnableLogging  bool   `env:"ENABLE_OPENSEARCH_LOGGING" envDefault:"false"`
}

var (
	instance     *Config
	instanceOnce sync.Once
)

// App returns the shared helpers
func App() *Config {
	instanceOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		validate.CustomValidate(v)
		instance = &Config{Validator: v}
	})
	return instance
}

// LoadEnvFiles loads the given .env files, skipping the ones that do not exist
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load parses the environment into an AppConfig
func Load() (*AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
