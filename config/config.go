package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Feeds         FeedsConfig
	Consolidation ConsolidationConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds run persistence configuration
type StoreConfig struct {
	Type string `mapstructure:"type"` // "memory" or "sqlite"
	Path string `mapstructure:"path"` // sqlite database file
}

// FeedsConfig holds the on-disk locations of the source exports and the
// curated lookup tables
type FeedsConfig struct {
	StorefrontPath string `mapstructure:"storefront_path"`
	LegacyPath     string `mapstructure:"legacy_path"`
	InventoryPath  string `mapstructure:"inventory_path"`
	CategoryIndex  string `mapstructure:"category_index"`
	LearnedMap     string `mapstructure:"learned_map"`
	ImageDir       string `mapstructure:"image_dir"`
}

// ConsolidationConfig holds engine tuning knobs
type ConsolidationConfig struct {
	SKUPrefix           string  `mapstructure:"sku_prefix"`
	FuzzyOverlapRatio   float64 `mapstructure:"fuzzy_overlap_ratio"`
	ImageScoreThreshold float64 `mapstructure:"image_score_threshold"`
	ImageMatchCap       int     `mapstructure:"image_match_cap"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/greenthumb/")

	// Environment variable settings
	v.SetEnvPrefix("GREENTHUMB")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.path", "catalog_runs.db")

	// Feed defaults
	v.SetDefault("feeds.storefront_path", "data/storefront_export.csv")
	v.SetDefault("feeds.legacy_path", "data/legacy_export.csv")
	v.SetDefault("feeds.inventory_path", "data/vendor_inventory.xlsx")
	v.SetDefault("feeds.category_index", "data/category_index.csv")
	v.SetDefault("feeds.learned_map", "data/learned_categories.json")
	v.SetDefault("feeds.image_dir", "data/images")

	// Consolidation defaults
	v.SetDefault("consolidation.sku_prefix", "GTH")
	v.SetDefault("consolidation.fuzzy_overlap_ratio", 0.6)
	v.SetDefault("consolidation.image_score_threshold", 0.4)
	v.SetDefault("consolidation.image_match_cap", 5)
	v.SetDefault("consolidation.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "sqlite" {
		return fmt.Errorf("store type must be 'memory' or 'sqlite', got: %s", config.Store.Type)
	}

	if config.Store.Type == "sqlite" && config.Store.Path == "" {
		return fmt.Errorf("store path is required when store type is 'sqlite'")
	}

	if config.Consolidation.SKUPrefix == "" {
		return fmt.Errorf("consolidation SKU prefix must not be empty")
	}

	if config.Consolidation.FuzzyOverlapRatio <= 0 || config.Consolidation.FuzzyOverlapRatio > 1 {
		return fmt.Errorf("fuzzy overlap ratio must be in (0, 1], got: %v", config.Consolidation.FuzzyOverlapRatio)
	}

	if config.Consolidation.ImageScoreThreshold < 0 {
		return fmt.Errorf("image score threshold must not be negative, got: %v", config.Consolidation.ImageScoreThreshold)
	}

	return nil
}
