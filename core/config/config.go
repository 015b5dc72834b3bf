package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"asset-inventory/core/database"
	"asset-inventory/core/logger"
	"asset-inventory/core/server"
	"asset-inventory/core/storage"
	"asset-inventory/feature/criticality"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the evidence and report bucket (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Criticality holds the tier bindings and flag policy of the criticality engine.
	Criticality criticality.Config `mapstructure:"criticality"`
}

// LoadConfig loads configuration from the .env file in path and the
// environment. Environment variables win over the file
// (e.g. CRITICALITY_TIER_HIGH -> criticality.tier_high).
func LoadConfig(path string) (*Config, error) {
	// A missing .env is fine (e.g. production)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Register every key with its default so AutomaticEnv can resolve it
	bindValues(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the services cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}

	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket: must not be empty"))
	}

	for tier, key := range c.Criticality.TierKeys() {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, fmt.Errorf("criticality: no catalog key for tier %s", tier))
		}
	}

	if c.Criticality.CatalogCacheSeconds < 0 {
		errs = append(errs, errors.New("criticality.catalog_cache_seconds: must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
