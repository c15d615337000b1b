package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SANTIICE_API_BASE_URL.
const EnvPrefix = "SANTIICE"

type API struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Conciliator struct {
	BaseURL         string        `mapstructure:"base_url"`
	WSURL           string        `mapstructure:"ws_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollMaxInterval time.Duration `mapstructure:"poll_max_interval"`
	PollMaxAttempts int           `mapstructure:"poll_max_attempts"`
}

type Storage struct {
	Dir string `mapstructure:"dir"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the client configuration.
type Config struct {
	API         API         `mapstructure:"api"`
	Conciliator Conciliator `mapstructure:"conciliator"`
	Storage     Storage     `mapstructure:"storage"`
	Log         Log         `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 2*time.Minute)
	v.SetDefault("conciliator.base_url", "http://localhost:8001")
	v.SetDefault("conciliator.ws_url", "ws://localhost:8001/api/conciliator/ws")
	v.SetDefault("conciliator.timeout", 5*time.Minute)
	v.SetDefault("conciliator.poll_interval", 3*time.Second)
	v.SetDefault("conciliator.poll_max_interval", 30*time.Second)
	v.SetDefault("conciliator.poll_max_attempts", 20)
	v.SetDefault("storage.dir", defaultStorageDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".santiice"
	}
	return filepath.Join(home, ".santiice", "data")
}

// Load reads santiice.yaml from path, or from the working directory and
// $HOME/.santiice when path is empty. A .env file in the working directory is
// loaded into the environment first. Environment variables override the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("santiice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".santiice"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the clients cannot work with.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Conciliator.BaseURL == "" {
		return errors.New("conciliator.base_url is required")
	}
	if c.Conciliator.PollInterval <= 0 {
		return fmt.Errorf("conciliator.poll_interval must be positive, got %s", c.Conciliator.PollInterval)
	}
	if c.Conciliator.PollMaxInterval < c.Conciliator.PollInterval {
		return fmt.Errorf("conciliator.poll_max_interval %s is below poll_interval %s",
			c.Conciliator.PollMaxInterval, c.Conciliator.PollInterval)
	}
	if c.Storage.Dir == "" {
		return errors.New("storage.dir is required")
	}
	return nil
}
