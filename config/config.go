package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DirEnv overrides the directory searched for config.yaml.
const DirEnv = "MARKETDASH_CONFIG_DIR"

type Config struct {
	Feed      FeedConfig      `mapstructure:"feed"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
}

// FeedConfig points the market data client at the chart API.
type FeedConfig struct {
	BaseURL      string        `mapstructure:"base_url" default:"https://query1.finance.yahoo.com" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout" default:"10s" validate:"gt=0"`
	UserAgent    string        `mapstructure:"user_agent" default:"Mozilla/5.0 (compatible; marketdash/1.0)"`
	APIKeyHeader string        `mapstructure:"api_key_header"`
	APIKey       string        `mapstructure:"api_key"`
	// APIKeyParameter is the SSM parameter holding the key in prod.
	APIKeyParameter string `mapstructure:"api_key_parameter"`
}

type DashboardConfig struct {
	HistoryStart         string        `mapstructure:"history_start" default:"2020-01-01" validate:"datetime=2006-01-02"`
	SnapshotLookbackDays int           `mapstructure:"snapshot_lookback_days" default:"5" validate:"gte=2"`
	RefreshInterval      time.Duration `mapstructure:"refresh_interval" default:"60s" validate:"gte=1s"`
	AutoRefresh          bool          `mapstructure:"auto_refresh" default:"true"`
	AlertThreshold       float64       `mapstructure:"alert_threshold" default:"3" validate:"gte=1,lte=10"`
	TopN                 int           `mapstructure:"top_n" default:"10" validate:"gte=1"`
	SimulationSeed       uint64        `mapstructure:"simulation_seed"` // 0 picks a time-based seed
}

// HistoryStartTime parses HistoryStart as a UTC date.
func (d DashboardConfig) HistoryStartTime() (time.Time, error) {
	return time.Parse(time.DateOnly, d.HistoryStart)
}

type ServerConfig struct {
	Host            string        `mapstructure:"host" default:"0.0.0.0"`
	Port            int           `mapstructure:"port" default:"8080" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"10s"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" default:"json" validate:"oneof=json console"`
	OutputFile  string `mapstructure:"output_file"`                                         // file path to store logs (optional)
	Environment string `mapstructure:"environment" default:"dev" validate:"oneof=dev prod"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	cfg, err := LoadFrom(configDir())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom reads config.yaml from dir. A .env file in the working directory is applied to the
// environment first; variables already set win.
func LoadFrom(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Support environment variables with dot notation (e.g., FEED_BASE_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func configDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		return filepath.Join(pwd, "config")
	}
	return filepath.Join(filepath.Dir(ex), "../config")
}
