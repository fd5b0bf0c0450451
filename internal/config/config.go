package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	HTTP     HTTPConfig     `yaml:"http"`
	Sync     SyncConfig     `yaml:"sync"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

// SyncConfig drives the staff-client synchronization loop.
type SyncConfig struct {
	IntervalSeconds       int    `yaml:"interval_seconds"`
	StateDir              string `yaml:"state_dir"`
	ServingCeilingMinutes int    `yaml:"serving_ceiling_minutes"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Sync.IntervalSeconds <= 0 {
		c.Sync.IntervalSeconds = 10
	}
	if c.Sync.StateDir == "" {
		c.Sync.StateDir = "./state"
	}
	if c.Sync.ServingCeilingMinutes <= 0 {
		c.Sync.ServingCeilingMinutes = 180
	}
}
