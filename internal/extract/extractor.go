// Package extract dumps field metadata for Salesforce objects to CSV.
package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wingman/internal/config"
	"wingman/internal/errors"
	"wingman/internal/report"
	"wingman/internal/salesforce"
)

// FieldSource is the client surface the extractor needs.
type FieldSource interface {
	GetFieldList(ctx context.Context, objectName string) ([]string, error)
	GetFieldMetadata(ctx context.Context, objectName, fieldName string) (*salesforce.FieldMetadata, error)
}

var csvHeader = []string{
	"Object", "Full Name", "Namespace", "DeveloperName",
	"Label", "Type", "Description", "Formula",
}

// Extractor writes one <object>_field_metadata.csv per configured object.
type Extractor struct {
	client FieldSource
	cfg    *config.ExtractConfig
	logger *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(client FieldSource, cfg *config.ExtractConfig, logger *zap.Logger) *Extractor {
	return &Extractor{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Run extracts field metadata for every configured object. A failure on
// one object is logged and does not stop the others.
func (e *Extractor) Run(ctx context.Context) ([]report.GeneratedFile, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, errors.NewConfigErrorWithPath(e.cfg.OutputDir, "failed to create output directory", err)
	}

	var files []report.GeneratedFile
	for _, object := range e.cfg.Objects {
		e.logger.Info("processing object", zap.String("object", object))
		path, err := e.extractObject(ctx, object)
		if err != nil {
			e.logger.Warn("failed to process object",
				zap.String("object", object), zap.Error(err))
			continue
		}

		file := report.GeneratedFile{Path: path}
		if info, statErr := os.Stat(path); statErr == nil {
			file.Size = info.Size()
		}
		files = append(files, file)
	}
	return files, nil
}

func (e *Extractor) extractObject(ctx context.Context, object string) (string, error) {
	fields, err := e.fieldList(ctx, object)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.cfg.OutputDir, fmt.Sprintf("%s_field_metadata.csv", object))
	out, err := os.Create(path)
	if err != nil {
		return "", errors.WrapFileError(path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return "", errors.WrapFileError(path, err)
	}

	if len(fields) == 0 {
		e.logger.Warn("no fields found for object", zap.String("object", object))
		w.Flush()
		return path, w.Error()
	}

	e.logger.Info("extracting fields",
		zap.String("object", object), zap.Int("fields", len(fields)))

	written := 0
	for _, field := range fields {
		md, err := e.client.GetFieldMetadata(ctx, object, field)
		if err != nil || md == nil {
			e.logger.Warn("failed to get metadata for field",
				zap.String("object", object), zap.String("field", field))
			continue
		}

		// Rows with no identifying metadata at all are dropped.
		if md.EntityDefinition.DeveloperName == "" && md.FullName == "" && md.DeveloperName == "" {
			continue
		}

		row := []string{
			md.EntityDefinition.DeveloperName,
			md.FullName,
			md.NamespacePrefix,
			md.DeveloperName,
			md.MasterLabel,
			md.DataType,
			md.Description,
			md.Formula(),
		}
		if err := w.Write(row); err != nil {
			return "", errors.WrapFileError(path, err)
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.WrapFileError(path, err)
	}

	e.logger.Info("generated field metadata CSV",
		zap.String("file", path), zap.Int("fields", written))
	return path, nil
}

// fieldList returns the fields to extract: the user-supplied list when
// given, otherwise all fields on the object, optionally truncated to
// MaxFields.
func (e *Extractor) fieldList(ctx context.Context, object string) ([]string, error) {
	if len(e.cfg.SpecificFields) > 0 {
		return e.cfg.SpecificFields, nil
	}

	fields, err := e.client.GetFieldList(ctx, object)
	if err != nil {
		return nil, err
	}
	if e.cfg.MaxFields > 0 && e.cfg.MaxFields < len(fields) {
		e.logger.Info("limiting fields", zap.Int("max", e.cfg.MaxFields))
		fields = fields[:e.cfg.MaxFields]
	}
	return fields, nil
}
