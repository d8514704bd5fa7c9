package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"wingman/internal/config"
	"wingman/internal/workflow"
)

var replaceCfg = &config.ReplaceConfig{}

var replaceCmd = &cobra.Command{
	Use:   "replace-fields",
	Short: "Replace a field reference across report definitions",
	Long: `Replace a field reference across all reports in an org.

The command queries report and folder metadata, retrieves report definition
files in batches via the sf CLI, replaces every literal occurrence of the
old field token, backs originals up under report-migration/backup/, and
writes a redeploy manifest listing only the changed reports.

With --reports-path the org retrieval is skipped and an existing local
reports directory is processed instead.`,
	Example: `  wingman replace-fields --org myorg --old-field Account.OldField__c --new-field Account.NewField__c
  wingman replace-fields --org myorg --old-field Contact.A__c --new-field Contact.B__c --dry-run
  wingman replace-fields --old-field Account.A__c --new-field Account.B__c --reports-path ./force-app/main/default/reports`,
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().StringVar(&replaceCfg.OldField, "old-field", "", "Old field reference to replace (e.g. Account.OldField__c)")
	replaceCmd.Flags().StringVar(&replaceCfg.NewField, "new-field", "", "New field reference (e.g. Account.NewField__c)")
	replaceCmd.Flags().IntVarP(&replaceCfg.BatchSize, "batch-size", "b", config.DefaultBatchSize, "Number of reports to retrieve per batch")
	replaceCmd.Flags().BoolVar(&replaceCfg.DryRun, "dry-run", false, "Show what would change without modifying anything")
	replaceCmd.Flags().StringVarP(&replaceCfg.ReportsPath, "reports-path", "r", "", "Path to existing report files (skips org retrieval)")

	_ = replaceCmd.MarkFlagRequired("old-field")
	_ = replaceCmd.MarkFlagRequired("new-field")

	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	replaceCfg.OrgAlias = targetOrg()
	if defaults != nil {
		if replaceCfg.ReportsPath == "" {
			replaceCfg.ReportsPath = defaults.ReportsPath
		}
		if !cmd.Flags().Changed("batch-size") && defaults.BatchSize > 0 {
			replaceCfg.BatchSize = defaults.BatchSize
		}
	}

	if err := replaceCfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	layout := workflow.DefaultLayout()
	if replaceCfg.ReportsPath != "" {
		layout.ReportsPath = replaceCfg.ReportsPath
	}

	var client workflow.OrgClient
	if replaceCfg.ReportsPath == "" {
		c, err := newOrgClient(ctx, replaceCfg.OrgAlias)
		if err != nil {
			return err
		}
		client = c
	}

	summary, err := workflow.NewReplacer(client, replaceCfg, layout, logger).Run(ctx)
	if err != nil {
		return err
	}

	summary.Render(cmd.OutOrStdout())
	return nil
}
