package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	NFusion NFusionConfig `mapstructure:"nfusion"`
	Dates   DateRange     `mapstructure:"dates"`
}

type APIConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Concurrency int           `mapstructure:"concurrency"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// DateRange bounds the Jalali dates considered by the analytics layer.
type DateRange struct {
	StartYear  int `mapstructure:"start_year"`
	StartMonth int `mapstructure:"start_month"`
	StartDay   int `mapstructure:"start_day"`
	EndYear    int `mapstructure:"end_year"`
	EndMonth   int `mapstructure:"end_month"`
	EndDay     int `mapstructure:"end_day"`
}

// Load loads application configuration using Viper.
// It reads from config.yaml when present, falls back to built-in defaults,
// and overrides everything with environment variables (SQLITE_PATH, ...).
// A .env file in the working directory is applied first without clobbering
// variables already set by the OS or CI.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Support environment variables with dot notation (e.g., SQLITE_PATH)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read config: %v", err)
		}
		// no config file: defaults plus env are enough to run
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.concurrency", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("sqlite.path", "market_data.db")
	v.SetDefault("sqlite.busy_timeout", 5*time.Second)

	v.SetDefault("nfusion.token", DefaultNFusionToken)
	v.SetDefault("nfusion.ssm_parameter", "NFUSION_TOKEN")

	// Jalali 1395/01/01 .. 1410/01/01, same window the analytics default to
	v.SetDefault("dates.start_year", 1395)
	v.SetDefault("dates.start_month", 1)
	v.SetDefault("dates.start_day", 1)
	v.SetDefault("dates.end_year", 1410)
	v.SetDefault("dates.end_month", 1)
	v.SetDefault("dates.end_day", 1)
}
