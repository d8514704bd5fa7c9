package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"wingman/internal/errors"
)

var connectionCmd = &cobra.Command{
	Use:     "test-connection",
	Short:   "Test connection to a Salesforce org",
	Example: `  wingman test-connection --org myorg`,
	RunE:    runTestConnection,
}

func init() {
	rootCmd.AddCommand(connectionCmd)
}

func runTestConnection(cmd *cobra.Command, args []string) error {
	alias, err := requireOrg()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newOrgClient(ctx, alias)
	if err != nil {
		return err
	}

	if err := client.TestConnection(ctx); err != nil {
		return errors.NewQueryError(fmt.Sprintf("failed to connect to org %q", alias), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully connected to org: %s\n", alias)
	return nil
}
