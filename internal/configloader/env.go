package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/exarch/pkg/config"
)

// envVarPrefix is the prefix for all exarch environment variables.
const envVarPrefix = "EXARCH_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"HOST":            {field: "host", typ: envTypeString, help: "Address to bind"},
	"PORT":            {field: "port", typ: envTypeInt, help: "Port to listen on"},
	"ROOT":            {field: "root", typ: envTypeString, help: "Directory of Markdown documents"},
	"TLS_CERT":        {field: "tls.cert", typ: envTypeString, help: "PEM certificate path"},
	"TLS_KEY":         {field: "tls.key", typ: envTypeString, help: "PEM private key path"},
	"TIMEOUT":         {field: "timeout", typ: envTypeDuration, help: "Per-connection deadline, e.g. 30s"},
	"MAX_CONNECTIONS": {field: "max_connections", typ: envTypeInt, help: "Concurrent connection cap (0 = unlimited)"},
	"FAILURE_STATUS":  {field: "failure_status", typ: envTypeBool, help: "Send failure status lines: true or false"},
	"INDEX_FILES":     {field: "index_files", typ: envTypeSlice, help: "Comma-separated directory index file names"},
	"METRICS_ADDR":    {field: "metrics_addr", typ: envTypeString, help: "Prometheus listen address"},
	"LOG_LEVEL":       {field: "log_level", typ: envTypeString, help: "debug, info, warn or error"},
	"BUILD_OUTPUT":    {field: "build.output", typ: envTypeString, help: "Output directory for exarch build"},
	"BUILD_JOBS":      {field: "build.jobs", typ: envTypeInt, help: "Conversion workers (0 = auto)"},
	"BUILD_IGNORE":    {field: "build.ignore", typ: envTypeSlice, help: "Comma-separated ignore globs"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with EXARCH_ (e.g., EXARCH_PORT).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "host":
		cfg.Host = value
	case "root":
		cfg.Root = value
	case "tls.cert":
		cfg.TLS.Cert = value
	case "tls.key":
		cfg.TLS.Key = value
	case "metrics_addr":
		cfg.MetricsAddr = value
	case "log_level":
		cfg.LogLevel = value
	case "build.output":
		cfg.Build.Output = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "failure_status":
		cfg.FailureStatus = config.BoolPtr(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "port":
		cfg.Port = value
	case "max_connections":
		cfg.MaxConnections = value
	case "build.jobs":
		cfg.Build.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "timeout":
		cfg.Timeout = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "index_files":
		cfg.IndexFiles = value
	case "build.ignore":
		cfg.Build.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
