// Package filter discovers report definition files under a reports root.
package filter

import (
	"io/fs"
	"path/filepath"
	"strings"

	"wingman/internal/errors"
)

// ReportSuffix is the file-naming convention for report definitions.
const ReportSuffix = ".report-meta.xml"

// FindReports walks root and returns every report definition file in
// traversal order. Entries that cannot be read are skipped; only a failure
// on the root itself aborts discovery.
func FindReports(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.WrapFileError(root, err)
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ReportSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Identifier derives the report identifier for a file: its path relative
// to the reports root, slash-separated, without the file-type suffix.
func Identifier(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.WrapFileError(path, err)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, ReportSuffix)), nil
}
