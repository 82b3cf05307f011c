package config

// DefaultTemplateHeader returns the header written above generated configs.
func DefaultTemplateHeader() string {
	return `# mdcst configuration
# See: https://github.com/yaklabco/mdcst`
}

// Template returns a commented project configuration listing every setting
// at its default.
func Template() []byte {
	return []byte(DefaultTemplateHeader() + `

# Log level: debug, info, warn, or error
log_level: info

# Styled output: auto, always, or never
color: auto

# Rewrite files in place instead of printing a diff
write: false

# Backups taken before a file is rewritten
backups:
  enabled: false
  # sidecar writes FILE.mdcst.bak next to FILE; none disables backups
  mode: sidecar

# Filling in missing code block languages
code:
  # Detect the language from the block content
  detect: true
  # Language written when detection is off or inconclusive
  fallback: text
`)
}
