// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Reference     ReferenceConfig         `mapstructure:"reference"`
	Engine        EngineConfig            `mapstructure:"engine"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	ResultTTL int    `mapstructure:"result_ttl"` // seconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// --- Reference Data ---

const (
	SourceFile          = "file"
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
)

// ReferenceConfig selects where norm tables and the career catalog come from.
type ReferenceConfig struct {
	NormsSource   string `mapstructure:"norms_source"` // file | postgres
	NormsPath     string `mapstructure:"norms_path"`
	CatalogSource string `mapstructure:"catalog_source"` // file | elasticsearch
	CatalogPath   string `mapstructure:"catalog_path"`
	CatalogIndex  string `mapstructure:"catalog_index"`
}

// --- Engine ---

// IQTransformConfig is the linear map from composite index to IQ estimate.
type IQTransformConfig struct {
	Name      string  `mapstructure:"name"`
	Intercept float64 `mapstructure:"intercept"`
	Slope     float64 `mapstructure:"slope"`
}

type EngineConfig struct {
	MatchStrategy   string             `mapstructure:"match_strategy"` // difference | threshold
	MinMatchScore   float64            `mapstructure:"min_match_score"`
	TopN            int                `mapstructure:"top_n"`
	Parallelism     int                `mapstructure:"parallelism"`
	CategoryWeights map[string]float64 `mapstructure:"category_weights"`
	AptitudeWeights map[string]float64 `mapstructure:"aptitude_weights"`
	IQTransform     IQTransformConfig  `mapstructure:"iq_transform"`
}

// --- Notifications ---

// NotificationConfig holds settings for the notify-results worker.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// MetricsConfig controls the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
