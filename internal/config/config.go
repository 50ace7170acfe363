package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RedisConfig for the optional async trigger queue
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Duration wraps time.Duration so YAML values like "5m" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// PipelineConfig controls the stage schedules. Snapshot and daily report
// use cron expressions; the three stages run on fixed intervals.
type PipelineConfig struct {
	IngestInterval   Duration `yaml:"ingest_interval"`
	ClassifyInterval Duration `yaml:"classify_interval"`
	RespondInterval  Duration `yaml:"respond_interval"`
	SnapshotCron     string   `yaml:"snapshot_cron"`
	DailyReportCron  string   `yaml:"daily_report_cron"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	}

	cfg.overrideFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "feedbacksentry.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
		Pipeline: PipelineConfig{
			IngestInterval:   Duration(5 * time.Minute),
			ClassifyInterval: Duration(1 * time.Minute),
			RespondInterval:  Duration(2 * time.Minute),
			SnapshotCron:     "*/5 * * * *",
			DailyReportCron:  "0 0 * * *",
		},
	}
}

func (c *Config) validate() error {
	if c.Pipeline.IngestInterval <= 0 ||
		c.Pipeline.ClassifyInterval <= 0 ||
		c.Pipeline.RespondInterval <= 0 {
		return fmt.Errorf("pipeline intervals must be positive")
	}
	return nil
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		c.Redis.Enabled = enabled == "true"
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("PIPELINE_INGEST_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Pipeline.IngestInterval = Duration(d)
		}
	}
	if v := os.Getenv("PIPELINE_CLASSIFY_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Pipeline.ClassifyInterval = Duration(d)
		}
	}
	if v := os.Getenv("PIPELINE_RESPOND_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Pipeline.RespondInterval = Duration(d)
		}
	}
}
