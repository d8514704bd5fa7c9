// Package workflow orchestrates the report migration flows: resolve
// identifiers, batch them, write manifests, retrieve from the org, run the
// search-replace engine, and package the changed reports for redeploy.
// Execution is strictly sequential; every external call blocks.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"wingman/internal/errors"
)

// Layout fixes the on-disk migration structure created at the start of
// every run.
type Layout struct {
	// Root is the migration directory holding retrieve/, deploy/ and
	// backup/ subdirectories.
	Root string
	// ReportsPath is where retrieved (or pre-existing) report files live.
	ReportsPath string
}

// DefaultLayout returns the conventional layout: report-migration/ beside
// the standard source-format reports directory.
func DefaultLayout() Layout {
	return Layout{
		Root:        "report-migration",
		ReportsPath: filepath.Join("force-app", "main", "default", "reports"),
	}
}

// RetrieveDir holds the per-batch retrieval manifests.
func (l Layout) RetrieveDir() string {
	return filepath.Join(l.Root, "retrieve")
}

// DeployDir holds the final redeploy manifest.
func (l Layout) DeployDir() string {
	return filepath.Join(l.Root, "deploy")
}

// BackupDir mirrors the reports tree with pre-mutation originals.
func (l Layout) BackupDir() string {
	return filepath.Join(l.Root, "backup")
}

// BatchManifest returns the manifest path for a 1-based batch number.
func (l Layout) BatchManifest(n int) string {
	return filepath.Join(l.RetrieveDir(), fmt.Sprintf("package_%d.xml", n))
}

// FinalManifest returns the redeploy manifest path.
func (l Layout) FinalManifest() string {
	return filepath.Join(l.DeployDir(), "package.xml")
}

// Ensure creates the migration directory structure. Creation is
// idempotent; existing directories are left alone.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.RetrieveDir(), l.DeployDir(), l.BackupDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewConfigErrorWithPath(dir, "failed to create migration directory", err)
		}
	}
	return nil
}
