package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config mirrors config/config.yaml.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Data   DataConfig   `mapstructure:"data"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"` // listen port
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

type DataConfig struct {
	Path           string `mapstructure:"path"`            // snapshot file location
	InitialCredits int64  `mapstructure:"initial_credits"` // starting balance for new users
}

// LoadConfig reads config/config.yaml with sane defaults; a missing
// file is fine. Values from .env / the environment win over yaml.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("data.path", "data/bicho.json")
	viper.SetDefault("data.initial_credits", 5000)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("BICHO_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv("SERVER_MODE"); v != "" {
		cfg.Server.Mode = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
