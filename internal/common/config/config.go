// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Frameworks FrameworksConfig `mapstructure:"frameworks"`
	Model      ModelConfig      `mapstructure:"model"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // seconds
}

// FrameworksConfig controls the on-disk framework store.
type FrameworksConfig struct {
	Dir       string `mapstructure:"dir"`
	DefaultID string `mapstructure:"default_id"`
	CacheTTL  int    `mapstructure:"cache_ttl"` // seconds, redis cache only
}

func (f FrameworksConfig) CacheTTLDuration() time.Duration {
	return time.Duration(f.CacheTTL) * time.Second
}

// ModelConfig configures the external language model endpoint. An empty
// BaseURL means no model is configured and the pipeline runs on local
// heuristics only.
type ModelConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Timeout     int     `mapstructure:"timeout"` // seconds
	MaxRetries  int     `mapstructure:"max_retries"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func (m ModelConfig) TimeoutDuration() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// Enabled reports whether an external model endpoint was configured.
func (m ModelConfig) Enabled() bool {
	return m.BaseURL != ""
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
