// Package resolve maps report records to the folder-qualified identifiers
// the retrieval manifest expects.
package resolve

import (
	"strings"

	"wingman/internal/salesforce"
)

// PublicFolder is the display name of the default report folder. Reports
// in it (or in no folder at all) live under unfiled$public in manifests.
const PublicFolder = "Public Reports"

const unfiledSegment = "unfiled$public"

// FolderMap maps folder display names to folder API names.
type FolderMap map[string]string

// NewFolderMap builds a FolderMap from folder query records, skipping
// records missing either name.
func NewFolderMap(folders []salesforce.FolderRecord) FolderMap {
	m := make(FolderMap, len(folders))
	for _, f := range folders {
		if f.Name != "" && f.DeveloperName != "" {
			m[f.Name] = f.DeveloperName
		}
	}
	return m
}

// Resolution is a resolved report identifier. FallbackUsed marks
// identifiers built from an unmapped folder display name; those may not
// exist in the org and are surfaced as warnings rather than errors.
type Resolution struct {
	Identifier   string
	FallbackUsed bool
}

// Resolve derives the manifest identifier for a report. It returns ok=false
// for records without a developer name; those are skipped, never resolved
// to an empty identifier.
func Resolve(rec salesforce.ReportRecord, folders FolderMap) (Resolution, bool) {
	if rec.DeveloperName == "" {
		return Resolution{}, false
	}

	if rec.FolderName == "" || rec.FolderName == PublicFolder {
		return Resolution{Identifier: unfiledSegment + "/" + rec.DeveloperName}, true
	}

	if dev, ok := folders[rec.FolderName]; ok {
		return Resolution{Identifier: dev + "/" + rec.DeveloperName}, true
	}

	// Best effort: an unmapped folder keeps its display name with spaces
	// replaced by underscores. Not validated against the org.
	segment := strings.ReplaceAll(rec.FolderName, " ", "_")
	return Resolution{Identifier: segment + "/" + rec.DeveloperName, FallbackUsed: true}, true
}
