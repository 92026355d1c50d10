package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/goinsight/internal/model"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)
	errors = append(errors, c.validateAnalysis()...)
	errors = append(errors, c.validateModels()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	if c.Source.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "source.host",
			Message: "host is required",
		})
	}
	if c.Source.User == "" {
		errors = append(errors, ValidationError{
			Field:   "source.user",
			Message: "user is required",
		})
	}
	if c.Source.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "source.database",
			Message: "database is required",
		})
	}
	if c.Source.Port <= 0 || c.Source.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "source.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Source.Port),
		})
	}
	switch c.Source.TLS {
	case "", "disable", "preferred", "required":
	default:
		errors = append(errors, ValidationError{
			Field:   "source.tls",
			Message: fmt.Sprintf("must be disable, preferred or required, got %q", c.Source.TLS),
		})
	}

	return errors
}

func (c *Config) validateAnalysis() ValidationErrors {
	var errors ValidationErrors

	if _, err := model.ParseComputeBudget(c.Analysis.MaxCost.Computation); err != nil {
		errors = append(errors, ValidationError{
			Field:   "analysis.max_cost.computation",
			Message: err.Error(),
		})
	}
	if _, err := model.ParseQueryBudget(c.Analysis.MaxCost.Query); err != nil {
		errors = append(errors, ValidationError{
			Field:   "analysis.max_cost.query",
			Message: err.Error(),
		})
	}

	return errors
}

func (c *Config) validateModels() ValidationErrors {
	var errors ValidationErrors

	for name, card := range c.Cards {
		if card.Query == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("cards.%s.query", name),
				Message: "query is required",
			})
		}
	}
	for name, segment := range c.Segments {
		if segment.Table == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("segments.%s.table", name),
				Message: "table is required",
			})
		}
		if segment.Filter == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("segments.%s.filter", name),
				Message: "filter is required",
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be debug, info, warn or error, got %q", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", c.Logging.Format),
		})
	}

	return errors
}
