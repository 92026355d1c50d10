// Package config provides configuration structures and loading for GoInsight.
package config

import "github.com/dbsmedya/goinsight/internal/model"

// Config represents the complete application configuration.
type Config struct {
	Source   DatabaseConfig           `yaml:"source" mapstructure:"source"`
	Analysis AnalysisConfig           `yaml:"analysis" mapstructure:"analysis"`
	Cards    map[string]CardConfig    `yaml:"cards" mapstructure:"cards"`
	Segments map[string]SegmentConfig `yaml:"segments" mapstructure:"segments"`
	Logging  LoggingConfig            `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the MySQL analysis source connection.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// AnalysisConfig represents the default resource budget for analysis runs.
type AnalysisConfig struct {
	MaxCost MaxCostConfig `yaml:"max_cost" mapstructure:"max_cost"`
}

// MaxCostConfig holds the two budget axes as config strings.
type MaxCostConfig struct {
	Computation string `yaml:"computation" mapstructure:"computation"` // linear, unbounded, yolo
	Query       string `yaml:"query" mapstructure:"query"`             // dont-touch, sample, full-scan, joins
}

// CardConfig represents a saved question available for analysis.
type CardConfig struct {
	Table string `yaml:"table" mapstructure:"table"`
	Query string `yaml:"query" mapstructure:"query"`
}

// SegmentConfig represents a named filtered subset of a table.
type SegmentConfig struct {
	Table  string `yaml:"table" mapstructure:"table"`
	Filter string `yaml:"filter" mapstructure:"filter"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Analysis: AnalysisConfig{
			MaxCost: MaxCostConfig{
				Computation: "linear",
				Query:       "sample",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag values over the loaded configuration.
// Empty strings leave the config value in place.
func (c *Config) ApplyOverrides(logLevel, logFormat, computation, queryBudget string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if computation != "" {
		c.Analysis.MaxCost.Computation = computation
	}
	if queryBudget != "" {
		c.Analysis.MaxCost.Query = queryBudget
	}
}

// Options builds the analysis options from the configured budget. Unknown
// budget strings have already been rejected by Validate.
func (c *Config) Options() model.Options {
	computation, _ := model.ParseComputeBudget(c.Analysis.MaxCost.Computation)
	query, _ := model.ParseQueryBudget(c.Analysis.MaxCost.Query)
	return model.Options{MaxCost: model.MaxCost{
		Computation: computation,
		Query:       query,
	}}
}
