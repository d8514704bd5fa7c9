// Package cmd implements the wingman command-line interface. Each
// subcommand wires configuration, the Salesforce client, and a workflow
// together; the packages under internal/ do the actual work.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wingman/internal/config"
	"wingman/internal/errors"
	"wingman/internal/logging"
	"wingman/internal/report"
	"wingman/internal/salesforce"
)

const version = "0.1.0"

var (
	orgAlias   string
	verbose    bool
	configFile string

	logger   *zap.Logger
	defaults *config.Defaults
)

var rootCmd = &cobra.Command{
	Use:     "wingman",
	Version: version,
	Short:   "Your wingman for Salesforce — automate the boring admin tasks",
	Long: `Wingman automates the tedious admin chores Salesforce consultants face daily:
extract field metadata from any object to CSV, and replace field references
across hundreds of reports with retrieval, backup and redeploy packaging.

Authentication, querying and retrieval are delegated to the sf CLI; install
it and run 'sf org login web' before using wingman.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}

		if configFile != "" {
			defaults, err = config.LoadDefaults(configFile)
			if err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), report.Banner(version))
		return nil
	},
}

// Execute runs the root command, formatting typed errors consistently and
// translating failure into a non-zero exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&orgAlias, "org", "o", "", "Salesforce org alias")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML defaults file (org, batch size, paths)")
}

// targetOrg resolves the org alias: the flag wins, then the defaults file.
func targetOrg() string {
	if orgAlias != "" {
		return orgAlias
	}
	if defaults != nil {
		return defaults.Org
	}
	return ""
}

// newOrgClient builds a client for the alias and verifies the sf CLI is
// usable and the alias is authenticated, mirroring the checks the sf tool
// itself cannot make for us.
func newOrgClient(ctx context.Context, alias string) (*salesforce.Client, error) {
	client := salesforce.NewClient(alias, logger)
	if err := client.CheckInstalled(ctx); err != nil {
		return nil, err
	}
	if err := client.ValidateOrg(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// requireOrg returns the resolved alias or a configuration error.
func requireOrg() (string, error) {
	alias := targetOrg()
	if alias == "" {
		return "", errors.NewConfigError("no org specified; use --org or set one in the config file", nil)
	}
	return alias, nil
}
