// Package replace implements the search-replace engine for report
// definition files. Field tokens are matched as literal substrings, never
// as patterns: API names contain characters with regex meaning.
package replace

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"wingman/internal/backup"
	"wingman/internal/errors"
	"wingman/internal/filter"
)

// Change records one report file that contained the old field token.
// Identifier is the path relative to the reports root without the
// file-type suffix, matching the manifest member format.
type Change struct {
	Identifier  string
	Path        string
	Occurrences int
}

// Result summarizes one engine pass over a reports root.
type Result struct {
	Scanned int
	Changes []Change
	Errors  int
}

// Identifiers returns the changed-report identifiers in discovery order.
func (r *Result) Identifiers() []string {
	ids := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		ids = append(ids, c.Identifier)
	}
	return ids
}

// Engine rewrites field references across report files. In dry-run mode it
// records the same change list a real run would produce but performs no
// filesystem writes.
type Engine struct {
	oldField string
	newField string
	dryRun   bool
	backups  *backup.Manager
	logger   *zap.Logger
}

// NewEngine creates an Engine. The backup manager receives a copy of every
// file before it is mutated.
func NewEngine(oldField, newField string, dryRun bool, backups *backup.Manager, logger *zap.Logger) *Engine {
	return &Engine{
		oldField: oldField,
		newField: newField,
		dryRun:   dryRun,
		backups:  backups,
		logger:   logger,
	}
}

// Run scans root for report files and rewrites every literal occurrence of
// the old field token. Per-file failures are logged and skipped; only a
// failure to walk the root itself is returned as an error.
func (e *Engine) Run(root string) (*Result, error) {
	files, err := filter.FindReports(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		e.logger.Warn("no report files found", zap.String("path", root))
		return &Result{}, nil
	}

	e.logger.Info("processing report files",
		zap.Int("count", len(files)),
		zap.String("field", e.oldField))

	result := &Result{}
	for _, path := range files {
		result.Scanned++
		change, err := e.processFile(root, path)
		if err != nil {
			result.Errors++
			e.logger.Warn("skipping report file", zap.String("file", path), zap.Error(err))
			continue
		}
		if change != nil {
			result.Changes = append(result.Changes, *change)
		}
	}

	e.logger.Info("search-replace pass complete",
		zap.Int("scanned", result.Scanned),
		zap.Int("updated", len(result.Changes)),
		zap.Int("errors", result.Errors))
	return result, nil
}

func (e *Engine) processFile(root, path string) (*Change, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileError(path, err)
	}

	content := string(raw)
	count := strings.Count(content, e.oldField)
	if count == 0 {
		return nil, nil
	}

	identifier, err := filter.Identifier(root, path)
	if err != nil {
		return nil, err
	}

	change := &Change{Identifier: identifier, Path: path, Occurrences: count}
	if e.dryRun {
		e.logger.Info("dry run: would replace field",
			zap.String("report", identifier),
			zap.Int("occurrences", count))
		return change, nil
	}

	// Backup before any mutation. A failed backup leaves the file untouched.
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, errors.WrapFileError(path, err)
	}
	if _, err := e.backups.Backup(path, rel); err != nil {
		return nil, err
	}

	updated := strings.ReplaceAll(content, e.oldField, e.newField)
	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return nil, err
	}

	// Advisory check only; the write is not rolled back.
	if !strings.Contains(updated, e.newField) {
		e.logger.Warn("replacement verification failed, new field absent after write",
			zap.String("report", identifier))
	}

	e.logger.Info("replaced field",
		zap.String("report", identifier),
		zap.Int("occurrences", count))
	return change, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so no partially-written report can persist.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".wingman-*.tmp")
	if err != nil {
		return errors.WrapFileError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapFileError(path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapFileError(path, err)
	}
	_ = os.Chmod(tmpName, mode)

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapFileError(path, err)
	}
	return nil
}
