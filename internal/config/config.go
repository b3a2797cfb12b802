// Package config 提供配置加载和管理功能
package config

import (
	"fmt"
	"strings"
	"time"
)

// 产物写入模式
const (
	OutputModePerRequest = "per_request"
	OutputModeShared     = "shared"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	LLM           LLMConfig           `yaml:"llm" mapstructure:"llm"`
	Biography     BiographyConfig     `yaml:"biography" mapstructure:"biography"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LLMConfig LLM 配置
type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
}

// ProviderConfig LLM 提供商配置
type ProviderConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `yaml:"temperature" mapstructure:"temperature"`
	// Timeout 为 0 时使用底层 HTTP 客户端默认值
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// BiographyConfig 传记生成配置
type BiographyConfig struct {
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig 原始输出落盘配置
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	FileName string `yaml:"file_name" mapstructure:"file_name"`
	// Mode: per_request（按请求 ID 分文件）或 shared（单文件覆盖）
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	CORS CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}

// DefaultProviderConfig 返回默认提供商配置
func (c *Config) DefaultProviderConfig() (ProviderConfig, bool) {
	p, ok := c.LLM.Providers[c.LLM.DefaultProvider]
	return p, ok
}

// Validate 校验启动所必需的配置
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.DefaultProvider) == "" {
		return fmt.Errorf("llm.default_provider is not set")
	}
	p, ok := c.DefaultProviderConfig()
	if !ok {
		return fmt.Errorf("llm provider %q not found in llm.providers", c.LLM.DefaultProvider)
	}
	key := strings.TrimSpace(p.APIKey)
	if key == "" || strings.HasPrefix(key, "${") {
		return fmt.Errorf("api key for llm provider %q is not set (OPENAI_API_KEY)", c.LLM.DefaultProvider)
	}
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("model for llm provider %q is not set", c.LLM.DefaultProvider)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens for llm provider %q must be positive", c.LLM.DefaultProvider)
	}
	if c.Server.HTTP.Port <= 0 || c.Server.HTTP.Port > 65535 {
		return fmt.Errorf("invalid server.http.port: %d", c.Server.HTTP.Port)
	}
	switch c.Biography.Output.Mode {
	case OutputModePerRequest, OutputModeShared:
	default:
		return fmt.Errorf("invalid biography.output.mode: %q", c.Biography.Output.Mode)
	}
	if c.Biography.Output.Mode == OutputModeShared && strings.TrimSpace(c.Biography.Output.FileName) == "" {
		return fmt.Errorf("biography.output.file_name is required in shared mode")
	}
	return nil
}
