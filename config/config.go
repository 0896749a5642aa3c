package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Cache    CacheConfig
	Pairing  PairingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FirebaseConfig holds Realtime Database configuration
type FirebaseConfig struct {
	DatabaseURL  string `mapstructure:"database_url"`
	AuthToken    string `mapstructure:"auth_token"`
	ProductsPath string `mapstructure:"products_path"`
	RulesPath    string `mapstructure:"rules_path"`
}

// CacheConfig holds snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// PairingConfig holds compatibility scoring configuration
type PairingConfig struct {
	IncompatiblePenalty int  `mapstructure:"incompatible_penalty"`
	CautionPenalty      int  `mapstructure:"caution_penalty"`
	EnableDebugLogging  bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/myskyn/")

	// Environment variable settings
	v.SetEnvPrefix("MYSKYN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Firebase defaults. URL and token default to empty so the keys are
	// registered for env overrides; validation enforces the URL.
	v.SetDefault("firebase.database_url", "")
	v.SetDefault("firebase.auth_token", "")
	v.SetDefault("firebase.products_path", "products")
	v.SetDefault("firebase.rules_path", "compatibilityRules")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Pairing defaults
	v.SetDefault("pairing.incompatible_penalty", 30)
	v.SetDefault("pairing.caution_penalty", 10)
	v.SetDefault("pairing.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Firebase.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set MYSKYN_FIREBASE_DATABASE_URL)")
	}

	if config.Pairing.IncompatiblePenalty < 0 {
		return fmt.Errorf("incompatible penalty must not be negative, got: %d", config.Pairing.IncompatiblePenalty)
	}

	if config.Pairing.CautionPenalty < 0 {
		return fmt.Errorf("caution penalty must not be negative, got: %d", config.Pairing.CautionPenalty)
	}

	return nil
}
