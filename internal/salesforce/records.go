package salesforce

// ReportRecord is one row of the report query: the display name, the API
// name, and the display name of the containing folder (empty for unfiled
// reports).
type ReportRecord struct {
	ID            string `json:"Id"`
	Name          string `json:"Name"`
	DeveloperName string `json:"DeveloperName"`
	FolderName    string `json:"FolderName"`
}

// FolderRecord is one row of the folder query, used to map folder display
// names to their API names.
type FolderRecord struct {
	ID            string `json:"Id"`
	Name          string `json:"Name"`
	DeveloperName string `json:"DeveloperName"`
}

// FieldMetadata is the Tooling API view of a single field definition.
type FieldMetadata struct {
	EntityDefinition struct {
		DeveloperName string `json:"DeveloperName"`
	} `json:"EntityDefinition"`
	FullName        string         `json:"FullName"`
	NamespacePrefix string         `json:"NamespacePrefix"`
	DeveloperName   string         `json:"DeveloperName"`
	MasterLabel     string         `json:"MasterLabel"`
	DataType        string         `json:"DataType"`
	Description     string         `json:"Description"`
	Metadata        map[string]any `json:"Metadata"`
}

// Formula extracts the formula expression from the raw metadata blob.
// Non-formula fields return an empty string.
func (m *FieldMetadata) Formula() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	if f, ok := m.Metadata["formula"].(string); ok {
		return f
	}
	return ""
}

// queryResponse is the envelope of sf data query --json output.
type queryResponse[T any] struct {
	Result struct {
		Records []T `json:"records"`
	} `json:"result"`
}

// orgEntry is one authenticated org in sf org list --json output.
type orgEntry struct {
	Alias    string `json:"alias"`
	Username string `json:"username"`
}

// orgListResponse groups orgs by section (sandboxes, devHubs, ...). The
// section names are not interesting, only the union of entries.
type orgListResponse struct {
	Result map[string][]orgEntry `json:"result"`
}
