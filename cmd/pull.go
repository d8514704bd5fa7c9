package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"wingman/internal/config"
	"wingman/internal/workflow"
)

var pullCfg = &config.PullConfig{}

var pullCmd = &cobra.Command{
	Use:   "pull-reports",
	Short: "Pull report metadata from an org without modifying anything",
	Long: `Retrieve report definition files into force-app/main/default/reports.

Use --name-contains to limit the pull to reports whose name or developer
name contains the given text.`,
	Example: `  wingman pull-reports --org myorg
  wingman pull-reports --org myorg --name-contains test
  wingman pull-reports --org myorg -n "Sales" --batch-size 50`,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringVarP(&pullCfg.NameContains, "name-contains", "n", "", "Only pull reports whose name or developer name contains this text")
	pullCmd.Flags().IntVarP(&pullCfg.BatchSize, "batch-size", "b", config.DefaultBatchSize, "Number of reports to retrieve per batch")

	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	var err error
	pullCfg.OrgAlias, err = requireOrg()
	if err != nil {
		return err
	}
	if defaults != nil && !cmd.Flags().Changed("batch-size") && defaults.BatchSize > 0 {
		pullCfg.BatchSize = defaults.BatchSize
	}
	if err := pullCfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newOrgClient(ctx, pullCfg.OrgAlias)
	if err != nil {
		return err
	}

	summary, err := workflow.NewPuller(client, pullCfg, workflow.DefaultLayout(), logger).Run(ctx)
	if err != nil {
		return err
	}

	summary.RenderPull(cmd.OutOrStdout())
	return nil
}
