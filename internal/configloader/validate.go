package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/config"
	"github.com/yaklabco/mdcst/pkg/fsutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins the errors into one, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// Validate checks a configuration for errors.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			result.add("log_level", cfg.LogLevel,
				fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel))
		}
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.add("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if cfg.Backups.Mode != "" && !fsutil.BackupMode(cfg.Backups.Mode).IsValid() {
		result.add("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	if strings.ContainsAny(cfg.Code.Fallback, " \t\r\n`") {
		result.add("code.fallback", cfg.Code.Fallback,
			fmt.Sprintf("invalid fallback language %q; must be a single word", cfg.Code.Fallback))
	}

	return result
}

func (r *ValidationResult) add(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}
