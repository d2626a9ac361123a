package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset     DatasetConfig     `yaml:"dataset" mapstructure:"dataset"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Filters     FiltersConfig     `yaml:"filters" mapstructure:"filters"`
	Stats       StatsConfig       `yaml:"stats" mapstructure:"stats"`
	Frankfurter FrankfurterConfig `yaml:"frankfurter" mapstructure:"frankfurter"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates the listings CSV.
type DatasetConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// FiltersConfig holds filter-pipeline thresholds.
type FiltersConfig struct {
	// MinRent excludes rentals priced below this amount as data-entry noise.
	MinRent float64 `yaml:"min_rent" mapstructure:"min_rent"`
}

// StatsConfig holds statistics thresholds.
type StatsConfig struct {
	ZScoreThreshold float64 `yaml:"zscore_threshold" mapstructure:"zscore_threshold"`
}

// FrankfurterConfig configures the exchange-rate client.
type FrankfurterConfig struct {
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec      float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	CacheTTLMinutes int     `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "propiedades_limpio.csv")
	v.SetDefault("dataset.delimiter", ";")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("filters.min_rent", 300.0)
	v.SetDefault("stats.zscore_threshold", 3.0)
	v.SetDefault("frankfurter.base_url", "https://api.frankfurter.app")
	v.SetDefault("frankfurter.timeout_secs", 30)
	v.SetDefault("frankfurter.rate_per_sec", 5.0)
	v.SetDefault("frankfurter.cache_ttl_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
