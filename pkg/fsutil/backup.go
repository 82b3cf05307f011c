package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// IsValid reports whether m is a known mode.
func (m BackupMode) IsValid() bool {
	return m == BackupModeSidecar || m == BackupModeNone
}

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".mdcst.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupPath returns where the backup of path lives, or "" when mode stores
// none.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies content, the original bytes of info.Path, to its
// backup path. An existing backup is kept so that repeated edits never lose
// the first original. Returns true if a backup was written.
func CreateBackup(ctx context.Context, info *FileInfo, content []byte, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if info == nil {
		return false, ErrNilFileInfo
	}

	backupPath := BackupPath(info.Path, cfg.Mode)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
