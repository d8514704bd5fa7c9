package salesforce

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	wingerr "wingman/internal/errors"
)

// fakeRunner records sf invocations and replies from a handler.
type fakeRunner struct {
	calls   [][]string
	handler func(args []string) ([]byte, error)
}

func (r *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	return r.handler(args)
}

func newTestClient(handler func(args []string) ([]byte, error)) (*Client, *fakeRunner) {
	runner := &fakeRunner{handler: handler}
	return NewClientWithRunner("myorg", runner, zap.NewNop()), runner
}

func TestGetReports(t *testing.T) {
	payload := `{"result":{"records":[
		{"Id":"00O1","Name":"Pipeline","DeveloperName":"Pipeline_Dev","FolderName":"Sales Reports"},
		{"Id":"00O2","Name":"Unfiled","DeveloperName":"Unfiled_Dev","FolderName":""}
	]}}`
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(payload), nil
	})

	records, err := client.GetReports(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Pipeline_Dev", records[0].DeveloperName)
	assert.Equal(t, "Sales Reports", records[0].FolderName)

	require.Len(t, runner.calls, 1)
	args := runner.calls[0]
	assert.Equal(t, []string{"data", "query"}, args[:2])
	assert.Contains(t, args, "--target-org")
	assert.Contains(t, args, "myorg")
	assert.NotContains(t, args, "--use-tooling-api")

	soql := args[3]
	assert.Contains(t, soql, "FROM Report WHERE IsDeleted = false")
	assert.Contains(t, soql, "ORDER BY Name")
	assert.NotContains(t, soql, "LIKE")
}

func TestGetReportsNameFilter(t *testing.T) {
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"result":{"records":[]}}`), nil
	})

	_, err := client.GetReports(context.Background(), "O'Brien")
	require.NoError(t, err)

	soql := runner.calls[0][3]
	assert.Contains(t, soql, `Name LIKE '%O\'Brien%'`)
	assert.Contains(t, soql, `DeveloperName LIKE '%O\'Brien%'`)
}

func TestGetReportsBadJSON(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte("ERROR: not json"), nil
	})

	_, err := client.GetReports(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, &wingerr.WingmanError{Type: wingerr.ErrTypeQuery})
}

func TestGetFoldersDowngradesFailure(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return nil, errors.New("no folder access")
	})

	folders, err := client.GetFolders(context.Background())
	assert.NoError(t, err, "folder query failure is non-fatal")
	assert.Empty(t, folders)
}

func TestGetFieldList(t *testing.T) {
	payload := `{"result":{"records":[
		{"DeveloperName":"Name"},{"DeveloperName":""},{"DeveloperName":"Phone"}
	]}}`
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(payload), nil
	})

	fields, err := client.GetFieldList(context.Background(), "Account")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Phone"}, fields)
	assert.Contains(t, runner.calls[0][3], "EntityDefinition.DeveloperName = 'Account'")
}

func TestGetFieldMetadata(t *testing.T) {
	payload := `{"result":{"records":[{
		"EntityDefinition":{"DeveloperName":"Account"},
		"FullName":"Account.Revenue__c",
		"DeveloperName":"Revenue",
		"MasterLabel":"Revenue",
		"DataType":"Formula (Currency)",
		"Metadata":{"formula":"Amount__c * 2"}
	}]}}`
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(payload), nil
	})

	md, err := client.GetFieldMetadata(context.Background(), "Account", "Revenue")
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Equal(t, "Account", md.EntityDefinition.DeveloperName)
	assert.Equal(t, "Amount__c * 2", md.Formula())
	assert.Contains(t, runner.calls[0], "--use-tooling-api")
}

func TestGetFieldMetadataAbsent(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"result":{"records":[]}}`), nil
	})

	md, err := client.GetFieldMetadata(context.Background(), "Account", "Nope")
	assert.NoError(t, err)
	assert.Nil(t, md)
}

func TestFieldMetadataFormulaMissing(t *testing.T) {
	md := &FieldMetadata{Metadata: map[string]any{"label": "x"}}
	assert.Empty(t, md.Formula())
	assert.Empty(t, (*FieldMetadata)(nil).Formula())
}

func TestRetrieve(t *testing.T) {
	client, runner := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"status":0}`), nil
	})

	require.NoError(t, client.Retrieve(context.Background(), "report-migration/retrieve/package_1.xml"))
	assert.Equal(t, []string{
		"project", "retrieve", "start",
		"--manifest", "report-migration/retrieve/package_1.xml",
		"--target-org", "myorg",
		"--json",
	}, runner.calls[0])
}

func TestRetrieveFailure(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return nil, errors.New("exit status 1: INVALID_CROSS_REFERENCE_KEY")
	})

	err := client.Retrieve(context.Background(), "package_1.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, &wingerr.WingmanError{Type: wingerr.ErrTypeRetrieve})
}

func TestValidateOrg(t *testing.T) {
	payload := `{"result":{
		"nonScratchOrgs":[{"alias":"prod","username":"a@x.com"}],
		"sandboxes":[{"alias":"myorg","username":"b@x.com"}]
	}}`
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte(payload), nil
	})

	assert.NoError(t, client.ValidateOrg(context.Background()))
}

func TestValidateOrgUnknownAlias(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return []byte(`{"result":{"sandboxes":[{"alias":"other"}]}}`), nil
	})

	err := client.ValidateOrg(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "myorg"))
}

func TestCheckInstalledFailure(t *testing.T) {
	client, _ := newTestClient(func(args []string) ([]byte, error) {
		return nil, errors.New("executable file not found in $PATH")
	})

	err := client.CheckInstalled(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, &wingerr.WingmanError{Type: wingerr.ErrTypeConfig})
}
