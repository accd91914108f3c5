package fsutil

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the path of sidecar backups.
const BackupSuffix = ".gojslint.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns the backup path for a file, or "" in BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup path. An existing
// backup is never overwritten, so repeated fix runs keep the first
// original. It reports whether a backup was written.
func CreateBackup(ctx context.Context, fsys afero.Fs, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}
	fsys = OrOS(fsys)
	backupPath := BackupPath(path, cfg.Mode)

	exists, err := afero.Exists(fsys, backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup path: %w", err)
	}
	if exists {
		return false, nil
	}

	stat, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, fsys, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup writes the backup of path back over it. It reports false
// when no backup exists.
func RestoreBackup(ctx context.Context, fsys afero.Fs, path string, mode BackupMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}
	fsys = OrOS(fsys)

	stat, err := fsys.Stat(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat backup: %w", err)
	}
	content, err := afero.ReadFile(fsys, backupPath)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, fsys, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}

// RemoveBackup deletes the backup of path. It reports false when none existed.
func RemoveBackup(fsys afero.Fs, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}
	if err := OrOS(fsys).Remove(backupPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether path has a backup.
func BackupExists(fsys afero.Fs, path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	ok, err := afero.Exists(OrOS(fsys), backupPath)
	return err == nil && ok
}
