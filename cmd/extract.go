package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"wingman/internal/config"
	"wingman/internal/extract"
	"wingman/internal/report"
)

var (
	extractCfg      = &config.ExtractConfig{}
	extractObjects  string
	extractSpecific string
)

var extractCmd = &cobra.Command{
	Use:   "extract-fields",
	Short: "Extract field metadata from objects to CSV files",
	Long: `Extract field metadata from Salesforce objects and write one
<object>_field_metadata.csv per object, including type, label, description
and formula for every field.`,
	Example: `  wingman extract-fields --org myorg --objects Account,Contact
  wingman extract-fields --org myorg --objects Account --max-fields 10
  wingman extract-fields --org myorg --objects Account --specific-fields Name,Type,Phone`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractObjects, "objects", "", "Comma-separated list of objects to extract fields from")
	extractCmd.Flags().IntVarP(&extractCfg.MaxFields, "max-fields", "m", 0, "Maximum number of fields per object (0 = all)")
	extractCmd.Flags().StringVarP(&extractSpecific, "specific-fields", "f", "", "Comma-separated list of specific fields to extract")
	extractCmd.Flags().StringVarP(&extractCfg.OutputDir, "output-dir", "d", ".", "Output directory for CSV files")

	_ = extractCmd.MarkFlagRequired("objects")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var err error
	extractCfg.OrgAlias, err = requireOrg()
	if err != nil {
		return err
	}

	extractCfg.Objects = strings.Split(extractObjects, ",")
	if extractSpecific != "" {
		extractCfg.SpecificFields = strings.Split(extractSpecific, ",")
	}
	if defaults != nil && !cmd.Flags().Changed("output-dir") && defaults.OutputDir != "" {
		extractCfg.OutputDir = defaults.OutputDir
	}
	if err := extractCfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newOrgClient(ctx, extractCfg.OrgAlias)
	if err != nil {
		return err
	}

	files, err := extract.NewExtractor(client, extractCfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	report.RenderFiles(cmd.OutOrStdout(), files)
	return nil
}
