// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct. It is loaded once at
// startup and treated as read-only afterwards; the pipeline holds no other
// process-wide shared state.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Oracle    OracleConfig    `mapstructure:"oracle"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // seconds, per pipeline run
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OracleConfig configures the structured-completion service used for routing,
// quality assessment, reconciliation, and synthesis.
type OracleConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxRetries  int     `mapstructure:"max_retries"`
	Temperature float64 `mapstructure:"temperature"`
}

// GetTimeout returns the per-call oracle timeout.
func (o OracleConfig) GetTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Millisecond
}

// ProvidersConfig carries the per-provider credentials and endpoints. Base
// URLs are overridable so tests can point providers at local fakes.
type ProvidersConfig struct {
	Timeout int `mapstructure:"timeout"` // milliseconds, per fetch

	YahooFinance ProviderEndpoint `mapstructure:"yahoo_finance"`
	Polygon      ProviderEndpoint `mapstructure:"polygon_io"`
	FRED         ProviderEndpoint `mapstructure:"fred"`
	NewsAPI      ProviderEndpoint `mapstructure:"newsapi"`
	Tavily       ProviderEndpoint `mapstructure:"tavily"`
	SECEdgar     SECEdgarConfig   `mapstructure:"sec_edgar"`
	CoinDesk     ProviderEndpoint `mapstructure:"coindesk"`
}

type ProviderEndpoint struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type SECEdgarConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"` // EDGAR requires an identifying UA
}

// GetTimeout returns the per-provider fetch timeout.
func (p ProvidersConfig) GetTimeout() time.Duration {
	return time.Duration(p.Timeout) * time.Millisecond
}

// PipelineConfig tunes the orchestrator and quality gate.
type PipelineConfig struct {
	QualityThreshold     float64 `mapstructure:"quality_threshold"`
	MaxSteps             int     `mapstructure:"max_steps"`
	MaxConcurrentFetches int     `mapstructure:"max_concurrent_fetches"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // Jaeger collector endpoint
}
