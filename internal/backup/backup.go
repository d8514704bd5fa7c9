// Package backup snapshots original report files into a mirrored directory
// tree before they are rewritten.
package backup

import (
	"io"
	"os"
	"path/filepath"

	"wingman/internal/errors"
)

// Manager copies files into a backup root, preserving their path relative
// to the reports root so a backup can be mapped straight back to its
// original.
type Manager struct {
	root string
}

// NewManager creates a Manager rooted at the given backup directory.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Root returns the backup root directory.
func (m *Manager) Root() string {
	return m.root
}

// Backup copies src to the backup root at relPath, creating parent
// directories as needed, and returns the backup path. An existing backup
// for the same path is overwritten: the last original seen before a
// mutation wins.
func (m *Manager) Backup(src, relPath string) (string, error) {
	dst := filepath.Join(m.root, relPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.NewBackupError(dst, "failed to create backup directory", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return "", errors.NewBackupError(src, "failed to open source file", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return "", errors.NewBackupError(dst, "failed to create backup file", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = os.Remove(dst)
		return "", errors.NewBackupError(dst, "failed to copy file content", err)
	}

	if info, err := os.Stat(src); err == nil {
		_ = os.Chmod(dst, info.Mode())
	}

	return dst, nil
}
