package configloader

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/yaklabco/exarch/internal/logging"
	"github.com/yaklabco/exarch/pkg/config"
)

// maxPort is the largest valid TCP port.
const maxPort = 65535

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "tls.key").
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
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Port < 1 || cfg.Port > maxPort {
		result.fail("port", cfg.Port, "port must be between 1 and %d", maxPort)
	}

	switch {
	case cfg.Timeout < 0:
		result.fail("timeout", cfg.Timeout, "timeout must be >= 0")
	case cfg.Timeout == 0:
		result.warn("timeout", cfg.Timeout, "no connection deadline; stalled clients hold their connection forever")
	}

	if cfg.MaxConnections < 0 {
		result.fail("max_connections", cfg.MaxConnections, "max_connections must be >= 0 (0 means unlimited)")
	}

	if (cfg.TLS.Cert == "") != (cfg.TLS.Key == "") {
		result.fail("tls", cfg.TLS, "tls.cert and tls.key must be set together")
	}

	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.fail("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			result.fail("metrics_addr", cfg.MetricsAddr, "invalid address: %v", err)
		}
	}

	validateIndexFiles(cfg, result)
	validateBuild(cfg, result)

	return result
}

func validateIndexFiles(cfg *config.Config, result *ValidationResult) {
	if len(cfg.IndexFiles) == 0 {
		result.warn("index_files", cfg.IndexFiles, "no index files; directory requests will not resolve")
		return
	}
	for i, name := range cfg.IndexFiles {
		if name == "" || strings.ContainsAny(name, `/\`) {
			result.fail(fmt.Sprintf("index_files[%d]", i), name, "index file must be a plain file name")
		}
	}
}

func validateBuild(cfg *config.Config, result *ValidationResult) {
	if cfg.Build.Jobs < 0 {
		result.fail("build.jobs", cfg.Build.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Build.Ignore {
		// filepath.Match returns an error only for malformed patterns.
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("build.ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
