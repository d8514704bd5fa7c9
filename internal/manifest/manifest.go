// Package manifest writes Salesforce package.xml documents listing report
// identifiers for retrieval and deployment.
package manifest

import (
	"encoding/xml"
	"os"

	"wingman/internal/errors"
)

// Fixed manifest constants. Every manifest this tool writes lists members
// of a single metadata type at a single API version.
const (
	MemberType = "Report"
	APIVersion = "65.0"

	xmlns = "http://soap.sforce.com/2006/04/metadata"
)

type packageDoc struct {
	XMLName xml.Name    `xml:"Package"`
	Xmlns   string      `xml:"xmlns,attr"`
	Types   packageType `xml:"types"`
	Version string      `xml:"version"`
}

type packageType struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

// Write serializes the identifiers into a package.xml at path. An empty
// member list still produces a valid document; batch manifests are written
// unconditionally so failed retrievals can be retried or inspected.
func Write(path string, members []string) error {
	doc := packageDoc{
		Xmlns: xmlns,
		Types: packageType{
			Members: members,
			Name:    MemberType,
		},
		Version: APIVersion,
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.NewManifestError(path, "failed to serialize manifest", err)
	}

	content := append([]byte(xml.Header), body...)
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.NewManifestError(path, "failed to write manifest", err)
	}
	return nil
}

// WriteFinal writes the redeploy manifest, but only when there is something
// to deploy. It reports whether a file was written: an empty member list
// produces no file, preventing a meaningless deploy attempt.
func WriteFinal(path string, members []string) (bool, error) {
	if len(members) == 0 {
		return false, nil
	}
	if err := Write(path, members); err != nil {
		return false, err
	}
	return true, nil
}
