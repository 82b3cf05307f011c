package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/mdcst/pkg/config"
)

// envVarPrefix is the prefix for all mdcst environment variables.
const envVarPrefix = "MDCST_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL":     {field: "log_level", typ: envTypeString, help: "Log level: debug, info, warn, or error"},
	"COLOR":         {field: "color", typ: envTypeString, help: "Styled output: auto, always, or never"},
	"WRITE":         {field: "write", typ: envTypeBool, help: "Rewrite files in place: true or false"},
	"BACKUP":        {field: "backups.enabled", typ: envTypeBool, help: "Back up files before rewriting: true or false"},
	"BACKUP_MODE":   {field: "backups.mode", typ: envTypeString, help: "Backup mode: sidecar or none"},
	"CODE_FALLBACK": {field: "code.fallback", typ: envTypeString, help: "Language for undetected code blocks"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDCST_ (e.g., MDCST_LOG_LEVEL).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
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
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "code.fallback":
		cfg.Code.Fallback = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "write":
		cfg.Write = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name string
	Help string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Help: mapping.help})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
