// Package config holds per-command configuration and validation for
// wingman. Validation runs before any side effect so bad input aborts the
// run cleanly.
package config

import (
	"path/filepath"
	"strings"

	"wingman/internal/errors"
)

// DefaultBatchSize is the number of reports retrieved per manifest when no
// batch size is configured.
const DefaultBatchSize = 100

// ReplaceConfig configures the replace-fields command.
type ReplaceConfig struct {
	OrgAlias    string
	OldField    string
	NewField    string
	BatchSize   int
	DryRun      bool
	ReportsPath string
}

// Validate checks the replace-fields configuration. The org alias is only
// required when reports are retrieved from a live org; with a local reports
// path the retrieval step is skipped entirely.
func (c *ReplaceConfig) Validate() error {
	if strings.TrimSpace(c.OldField) == "" {
		return errors.NewConfigError("old field is required", nil)
	}
	if strings.TrimSpace(c.NewField) == "" {
		return errors.NewConfigError("new field is required", nil)
	}
	if c.BatchSize <= 0 {
		return errors.NewConfigError("batch size must be positive", nil)
	}
	if c.ReportsPath == "" && c.OrgAlias == "" {
		return errors.NewConfigError("no org specified; use --org or provide --reports-path", nil)
	}
	if c.ReportsPath != "" {
		abs, err := filepath.Abs(c.ReportsPath)
		if err != nil {
			return errors.NewConfigErrorWithPath(c.ReportsPath, "invalid reports path", err)
		}
		c.ReportsPath = abs
	}
	return nil
}

// PullConfig configures the pull-reports command.
type PullConfig struct {
	OrgAlias     string
	NameContains string
	BatchSize    int
}

// Validate checks the pull-reports configuration.
func (c *PullConfig) Validate() error {
	if c.OrgAlias == "" {
		return errors.NewConfigError("no org specified; use --org", nil)
	}
	if c.BatchSize <= 0 {
		return errors.NewConfigError("batch size must be positive", nil)
	}
	return nil
}

// ExtractConfig configures the extract-fields command.
type ExtractConfig struct {
	OrgAlias       string
	Objects        []string
	MaxFields      int
	SpecificFields []string
	OutputDir      string
}

// Validate checks the extract-fields configuration and normalizes the
// object and field lists.
func (c *ExtractConfig) Validate() error {
	if c.OrgAlias == "" {
		return errors.NewConfigError("no org specified; use --org", nil)
	}
	c.Objects = trimList(c.Objects)
	if len(c.Objects) == 0 {
		return errors.NewConfigError("at least one object is required", nil)
	}
	c.SpecificFields = trimList(c.SpecificFields)
	if c.MaxFields < 0 {
		return errors.NewConfigError("max fields must not be negative", nil)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

func trimList(items []string) []string {
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
