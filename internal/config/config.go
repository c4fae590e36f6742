package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type CheckoutConfig struct {
	ProcessingDelayMs int `mapstructure:"processing_delay_ms"`
}

type AppSubConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	App      AppSubConfig   `mapstructure:"app"`
}

// APITimeout returns the remote API request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CheckoutDelay 下单模拟处理时长（前端原来固定等 2 秒）
func (c *Config) CheckoutDelay() time.Duration {
	if c.Checkout.ProcessingDelayMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Checkout.ProcessingDelayMs) * time.Millisecond
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. SHOP_SERVER_PORT=9000
		v.SetEnvPrefix("SHOP")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
