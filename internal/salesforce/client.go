// Package salesforce wraps the sf command-line tool. Authentication,
// querying, and metadata retrieval are all delegated to sf subprocess
// invocations; this package shapes arguments and parses the --json output.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"wingman/internal/errors"
)

// Runner executes the sf binary and returns its stdout. It exists so tests
// can substitute canned CLI output for real subprocess calls.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

type execRunner struct {
	binary string
}

func (r execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return stdout.Bytes(), fmt.Errorf("%s %s: %w: %s", r.binary, args[0], err, detail)
		}
		return stdout.Bytes(), fmt.Errorf("%s %s: %w", r.binary, args[0], err)
	}
	return stdout.Bytes(), nil
}

// Client talks to one org, identified by its alias, through the sf CLI.
type Client struct {
	orgAlias string
	runner   Runner
	logger   *zap.Logger
}

// NewClient creates a Client backed by the real sf binary.
func NewClient(orgAlias string, logger *zap.Logger) *Client {
	return NewClientWithRunner(orgAlias, execRunner{binary: "sf"}, logger)
}

// NewClientWithRunner creates a Client with a custom Runner, used by tests.
func NewClientWithRunner(orgAlias string, runner Runner, logger *zap.Logger) *Client {
	return &Client{
		orgAlias: orgAlias,
		runner:   runner,
		logger:   logger,
	}
}

// OrgAlias returns the alias this client targets.
func (c *Client) OrgAlias() string {
	return c.orgAlias
}

// CheckInstalled verifies the sf CLI is installed and can list orgs.
func (c *Client) CheckInstalled(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "org", "list"); err != nil {
		return errors.NewConfigError(
			"Salesforce CLI (sf) is not installed or not authenticated; install it and run 'sf org login web' first", err)
	}
	return nil
}

// ValidateOrg verifies the configured alias exists among authenticated orgs.
func (c *Client) ValidateOrg(ctx context.Context) error {
	out, err := c.runner.Run(ctx, "org", "list", "--json")
	if err != nil {
		return errors.NewQueryError("failed to list orgs", err)
	}

	var resp orgListResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return errors.NewQueryError("invalid JSON from sf org list", err)
	}

	for _, section := range resp.Result {
		for _, org := range section {
			if org.Alias == c.orgAlias {
				return nil
			}
		}
	}
	return errors.NewConfigError(fmt.Sprintf("org alias %q not found; run 'sf org list' to see available orgs", c.orgAlias), nil)
}

// TestConnection runs a trivial query against the org to confirm access.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.query(ctx, "SELECT Id FROM User LIMIT 1", false)
	return err
}

func (c *Client) query(ctx context.Context, soql string, tooling bool) ([]byte, error) {
	args := []string{"data", "query", "--query", soql, "--target-org", c.orgAlias, "--json"}
	if tooling {
		args = append(args, "--use-tooling-api")
	}

	c.logger.Debug("running query", zap.String("soql", soql), zap.Bool("tooling", tooling))
	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return nil, errors.NewQueryError("query failed", err)
	}
	return out, nil
}

func decodeRecords[T any](out []byte) ([]T, error) {
	var resp queryResponse[T]
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, errors.NewQueryError("invalid JSON query response", err)
	}
	return resp.Result.Records, nil
}

// GetReports returns all non-deleted reports in the org, ordered by name.
// A non-empty nameContains limits results to reports whose name or
// developer name contains the text.
func (c *Client) GetReports(ctx context.Context, nameContains string) ([]ReportRecord, error) {
	soql := "SELECT Id, Name, DeveloperName, FolderName, LastModifiedDate " +
		"FROM Report WHERE IsDeleted = false"
	if nameContains != "" {
		pattern := "%" + escapeSOQL(nameContains) + "%"
		soql += fmt.Sprintf(" AND (Name LIKE '%s' OR DeveloperName LIKE '%s')", pattern, pattern)
	}
	soql += " ORDER BY Name"

	out, err := c.query(ctx, soql, false)
	if err != nil {
		return nil, err
	}
	return decodeRecords[ReportRecord](out)
}

// GetFolders returns all folders in the org. A query failure is downgraded
// to a warning and an empty result: identifier resolution falls back to
// folder display names when the mapping is unavailable.
func (c *Client) GetFolders(ctx context.Context) ([]FolderRecord, error) {
	out, err := c.query(ctx, "SELECT Id, Name, DeveloperName FROM Folder ORDER BY Name", false)
	if err != nil {
		c.logger.Warn("could not retrieve folders, will use folder names as-is", zap.Error(err))
		return nil, nil
	}
	return decodeRecords[FolderRecord](out)
}

// GetFieldList returns the developer names of all fields on an object.
func (c *Client) GetFieldList(ctx context.Context, objectName string) ([]string, error) {
	soql := fmt.Sprintf(
		"SELECT DeveloperName FROM FieldDefinition WHERE EntityDefinition.DeveloperName = '%s'",
		escapeSOQL(objectName))
	out, err := c.query(ctx, soql, false)
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords[struct {
		DeveloperName string `json:"DeveloperName"`
	}](out)
	if err != nil {
		return nil, err
	}

	var fields []string
	for _, r := range records {
		if r.DeveloperName != "" {
			fields = append(fields, r.DeveloperName)
		}
	}
	return fields, nil
}

// GetFieldMetadata returns detailed metadata for one field via the Tooling
// API, or nil when the field does not exist or the query fails.
func (c *Client) GetFieldMetadata(ctx context.Context, objectName, fieldName string) (*FieldMetadata, error) {
	soql := fmt.Sprintf(
		"SELECT EntityDefinition.DeveloperName, FullName, NamespacePrefix, "+
			"DeveloperName, MasterLabel, DataType, Description, Metadata "+
			"FROM FieldDefinition WHERE EntityDefinition.DeveloperName = '%s' "+
			"AND DeveloperName = '%s'",
		escapeSOQL(objectName), escapeSOQL(fieldName))

	out, err := c.query(ctx, soql, true)
	if err != nil {
		return nil, nil
	}

	records, err := decodeRecords[FieldMetadata](out)
	if err != nil || len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Retrieve pulls the metadata components named in the manifest into the
// local project tree.
func (c *Client) Retrieve(ctx context.Context, manifestPath string) error {
	args := []string{"project", "retrieve", "start",
		"--manifest", manifestPath,
		"--target-org", c.orgAlias,
		"--json"}
	if _, err := c.runner.Run(ctx, args...); err != nil {
		return errors.NewRetrieveError(manifestPath, "failed to retrieve reports", err)
	}
	return nil
}

func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
