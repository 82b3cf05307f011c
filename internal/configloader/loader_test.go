package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcst/internal/configloader"
	"github.com/yaklabco/mdcst/pkg/config"
)

// project returns a temp dir that is its own VCS root, so discovery never
// walks above it.
func project(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(context.Background(), isolated(project(t)))
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := project(t)
	path := filepath.Join(root, ".mdcst.yml")
	writeConfig(t, path, "color: never\nbackups:\n  enabled: true\n")

	nested := filepath.Join(root, "notes", "daily")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.ColorNever, result.Config.Color)
	assert.True(t, result.Config.BackupEnabled())
	assert.Equal(t, "sidecar", result.Config.Backups.Mode, "unset keys keep defaults")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".mdcst.yml"), "color: never\n")
	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	path, err := configloader.FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitReplacesProject(t *testing.T) {
	t.Parallel()

	root := project(t)
	writeConfig(t, filepath.Join(root, ".mdcst.yaml"), "color: never\n")
	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeConfig(t, explicit, "log_level: debug\n")

	opts := isolated(root)
	opts.ExplicitPath = explicit
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, "debug", result.Config.LogLevel)
	assert.Equal(t, config.ColorAuto, result.Config.Color)
}

func TestLoad_CLIOverridesFile(t *testing.T) {
	t.Parallel()

	root := project(t)
	writeConfig(t, filepath.Join(root, ".mdcst.yml"), "write: true\ncode:\n  fallback: plaintext\n")

	opts := isolated(root)
	opts.CLIConfig = &config.Config{Write: config.Bool(false)}
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Config.ShouldWrite(), "explicit false wins")
	assert.Equal(t, "plaintext", result.Config.Code.Fallback)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "log level", content: "log_level: loud\n", want: "log_level"},
		{name: "color", content: "color: rainbow\n", want: "color"},
		{name: "backup mode", content: "backups:\n  mode: xdg\n", want: "backups.mode"},
		{name: "fallback", content: "code:\n  fallback: two words\n", want: "code.fallback"},
		{name: "unknown key", content: "flavor: gfm\n", want: ".mdcst.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := project(t)
			writeConfig(t, filepath.Join(root, ".mdcst.yml"), tt.content)

			_, err := configloader.Load(context.Background(), isolated(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MDCST_LOG_LEVEL", "warn")
	t.Setenv("MDCST_WRITE", "1")
	t.Setenv("MDCST_BACKUP", "true")
	t.Setenv("MDCST_BACKUP_MODE", "none")

	opts := isolated(project(t))
	opts.IgnoreEnv = false
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "warn", result.Config.LogLevel)
	assert.True(t, result.Config.ShouldWrite())
	assert.True(t, result.Config.BackupEnabled())
	assert.Equal(t, "none", result.Config.Backups.Mode)
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("MDCST_WRITE", "maybe")

	err := configloader.LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDCST_WRITE")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := configloader.ListEnvVars()
	require.NotEmpty(t, vars)
	assert.Equal(t, "MDCST_BACKUP", vars[0].Name)
	for _, v := range vars {
		assert.NotEmpty(t, v.Help, v.Name)
	}
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdcst.yml")
	require.NoError(t, configloader.WriteTemplate(path, false))
	require.Error(t, configloader.WriteTemplate(path, false), "refuses to overwrite")
	require.NoError(t, configloader.WriteTemplate(path, true))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}
