package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string        `yaml:"log-level"    env:"LOG_LEVEL"    env-default:"info"`
	Player1Port string        `yaml:"player1-port" env:"PLAYER1_PORT" env-default:"2201"`
	Player2Port string        `yaml:"player2-port" env:"PLAYER2_PORT" env-default:"2202"`
	HTTPPort    string        `yaml:"http-port"    env:"HTTP_PORT"    env-default:"9090"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"IDLE_TIMEOUT" env-default:"0s"`
	Redis       Redis         `yaml:"redis"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled"     env:"REDIS_ENABLED"     env-default:"false"`
	Host       string        `yaml:"host"        env:"REDIS_HOST"        env-default:"localhost"`
	Port       string        `yaml:"port"        env:"REDIS_PORT"        env-default:"6379"`
	ArchiveTTL time.Duration `yaml:"archive-ttl" env:"REDIS_ARCHIVE_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path, then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
