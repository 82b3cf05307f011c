// Package config defines the configuration types for mdcst.
// These types are pure data; discovery and merging live in configloader.
package config

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backups taken before a file is rewritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// CodeConfig controls the code block language filler.
type CodeConfig struct {
	// Detect enables content-based language detection.
	Detect *bool `yaml:"detect,omitempty"`

	// Fallback is written when detection is off or inconclusive.
	Fallback string `yaml:"fallback,omitempty"`
}

// Config is the root configuration structure for mdcst.
//
// Boolean settings are pointers so that an explicit false in a higher
// precedence source overrides a true below it.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Color is one of auto, always, never.
	Color ColorMode `yaml:"color,omitempty"`

	// Write rewrites files in place instead of printing a diff.
	Write *bool `yaml:"write,omitempty"`

	// Backups configures backups when writing.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Code configures `mdcst code lang`.
	Code CodeConfig `yaml:"code,omitempty"`
}

// Default values.
const (
	DefaultLogLevel     = "info"
	DefaultBackupMode   = "sidecar"
	DefaultCodeFallback = "text"
)

// NewConfig returns a Config with sensible defaults. Every field is set.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Color:    ColorAuto,
		Write:    Bool(false),
		Backups: BackupsConfig{
			Enabled: Bool(false),
			Mode:    DefaultBackupMode,
		},
		Code: CodeConfig{
			Detect:   Bool(true),
			Fallback: DefaultCodeFallback,
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// ShouldWrite reports whether edits go to disk.
func (c *Config) ShouldWrite() bool { return deref(c.Write) }

// BackupEnabled reports whether a backup is taken before writing.
func (c *Config) BackupEnabled() bool { return deref(c.Backups.Enabled) }

// DetectLanguage reports whether code block languages are detected from
// content.
func (c *Config) DetectLanguage() bool { return deref(c.Code.Detect) }

func deref(b *bool) bool { return b != nil && *b }
