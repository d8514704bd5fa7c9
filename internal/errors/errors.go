// Package errors provides a typed error system for wingman operations.
// Errors are classified by category so callers can decide whether a failure
// aborts the run (configuration) or only the current unit of work (a batch,
// an object, a single file).
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// ErrorType represents the category of error for classification and handling.
type ErrorType string

// Error type constants define the categories of failures that can occur
// during a wingman run.
const (
	ErrTypeConfig   ErrorType = "config"
	ErrTypeFile     ErrorType = "file"
	ErrTypeBackup   ErrorType = "backup"
	ErrTypeQuery    ErrorType = "query"
	ErrTypeRetrieve ErrorType = "retrieve"
	ErrTypeManifest ErrorType = "manifest"
)

// WingmanError is the base error type carrying a category, an optional
// path (file or manifest), a message, and the underlying cause.
type WingmanError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

func (e *WingmanError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *WingmanError) Unwrap() error {
	return e.Cause
}

// Is matches errors by category, enabling errors.Is checks against a
// representative error of the same type.
func (e *WingmanError) Is(target error) bool {
	t, ok := target.(*WingmanError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ConfigError represents invalid or missing configuration. Configuration
// errors abort the run before any side effect.
type ConfigError struct {
	*WingmanError
}

// NewConfigError creates a configuration error without path context.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		WingmanError: &WingmanError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error tied to a path.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		WingmanError: &WingmanError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// FileError represents a file system operation failure on a report file.
// File errors are isolated per file: the run logs them and continues.
type FileError struct {
	*WingmanError
}

// NewFileError creates a file operation error with context.
func NewFileError(path, message string, cause error) *FileError {
	return &FileError{
		WingmanError: &WingmanError{
			Type:    ErrTypeFile,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// BackupError represents a failure to snapshot an original report file.
// A failed backup prevents mutation of that file.
type BackupError struct {
	*WingmanError
}

// NewBackupError creates a backup operation error.
func NewBackupError(path, message string, cause error) *BackupError {
	return &BackupError{
		WingmanError: &WingmanError{
			Type:    ErrTypeBackup,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// QueryError represents a failed SOQL query against the org, including
// malformed JSON output from the sf CLI.
type QueryError struct {
	*WingmanError
}

// NewQueryError creates a query error.
func NewQueryError(message string, cause error) *QueryError {
	return &QueryError{
		WingmanError: &WingmanError{
			Type:    ErrTypeQuery,
			Message: message,
			Cause:   cause,
		},
	}
}

// RetrieveError represents a failed metadata retrieval for one manifest.
// Retrieval failures are batch-granular: the batch is skipped, the run
// continues.
type RetrieveError struct {
	*WingmanError
}

// NewRetrieveError creates a retrieval error for a manifest path.
func NewRetrieveError(path, message string, cause error) *RetrieveError {
	return &RetrieveError{
		WingmanError: &WingmanError{
			Type:    ErrTypeRetrieve,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WrapFileError converts a standard I/O error into a typed FileError with
// a classification-appropriate message.
func WrapFileError(path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return NewFileError(path, "file not found", err)
	case stderrors.Is(err, fs.ErrPermission):
		return NewFileError(path, "permission denied", err)
	default:
		return NewFileError(path, "file operation failed", err)
	}
}

// ManifestError represents a failure to serialize or write a package
// manifest.
type ManifestError struct {
	*WingmanError
}

// NewManifestError creates a manifest error for an output path.
func NewManifestError(path, message string, cause error) *ManifestError {
	return &ManifestError{
		WingmanError: &WingmanError{
			Type:    ErrTypeManifest,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}
