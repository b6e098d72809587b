package config

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	validLogLevels  = []any{"debug", "info", "warn", "error"}
	validLogFormats = []any{"text", "json"}
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Validate checks all config values.
// Returns nil if valid, or joined errors for all validation failures.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		rules []validation.Rule
	}{
		{
			name:  "input",
			value: c.Input,
			rules: []validation.Rule{validation.Required},
		},
		{
			name:  "output",
			value: c.Output,
			rules: []validation.Rule{validation.Required},
		},
		{
			name:  "log_level",
			value: c.LogLevel,
			rules: []validation.Rule{
				validation.Required,
				validation.In(validLogLevels...).Error("must be one of: debug, info, warn, error"),
			},
		},
		{
			name:  "log_format",
			value: c.LogFormat,
			rules: []validation.Rule{
				validation.Required,
				validation.In(validLogFormats...).Error("must be one of: text, json"),
			},
		},
	}

	var errs []error
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			errs = append(errs, &ValidationError{
				Field:   f.name,
				Value:   f.value,
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
