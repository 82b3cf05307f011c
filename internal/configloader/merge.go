package configloader

import "github.com/yaklabco/mdcst/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Empty strings and nil pointers in override leave base untouched, so a file
// only overrides the keys it sets.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Write != nil {
		result.Write = config.Bool(*override.Write)
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = config.Bool(*override.Backups.Enabled)
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Code.Detect != nil {
		result.Code.Detect = config.Bool(*override.Code.Detect)
	}
	if override.Code.Fallback != "" {
		result.Code.Fallback = override.Code.Fallback
	}

	return result
}
