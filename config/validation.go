package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks that the options the service cannot run without are present
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"GENERATION_API_KEY", cfg.GenerationAPIKey},
		{"DATASTORE_URL", cfg.DatastoreURL},
		{"DATASTORE_KEY", cfg.DatastoreKey},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{Field: r.field, Message: "is required"})
		}
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"})
	}
	if cfg.GenerationTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "GENERATION_TIMEOUT", Message: "must be positive"})
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{Field: "SESSION_TTL", Message: "must be positive"})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{Field: "TOKEN_TTL", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsMissing reports whether err names field as a missing or invalid option
func IsMissing(err error, field string) bool {
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		return false
	}
	for _, ve := range errs {
		if ve.Field == field {
			return true
		}
	}
	return false
}
