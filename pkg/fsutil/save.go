package fsutil

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// SaveResult describes what Save did.
type SaveResult struct {
	// Written is false when the edited content equals the original.
	Written bool

	// BackupPath is set when a backup was created.
	BackupPath string
}

// Save replaces the file described by info with edited. original must be the
// content ReadFile returned alongside info. Save fails with ErrModified if
// the file changed on disk in the meantime, and writes nothing when edited
// equals original.
func Save(ctx context.Context, info *FileInfo, original, edited []byte, backup BackupConfig) (SaveResult, error) {
	var result SaveResult
	if info == nil {
		return result, ErrNilFileInfo
	}
	if sha256.Sum256(edited) == info.Hash {
		return result, nil
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return result, err
	}
	if modified {
		return result, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	created, err := CreateBackup(ctx, info, original, backup)
	if err != nil {
		return result, err
	}
	if created {
		result.BackupPath = BackupPath(info.Path, backup.Mode)
	}

	if err := WriteAtomic(ctx, info.Path, edited, info.Mode); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}
