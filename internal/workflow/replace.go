package workflow

import (
	"context"
	"os"

	"go.uber.org/zap"

	"wingman/internal/backup"
	"wingman/internal/batch"
	"wingman/internal/config"
	"wingman/internal/errors"
	"wingman/internal/manifest"
	"wingman/internal/replace"
	"wingman/internal/report"
	"wingman/internal/resolve"
	"wingman/internal/salesforce"
)

// OrgClient is the narrow surface of the Salesforce collaborator the
// workflows consume. Every call can fail; retry policy, if any, belongs to
// the implementation.
type OrgClient interface {
	GetReports(ctx context.Context, nameContains string) ([]salesforce.ReportRecord, error)
	GetFolders(ctx context.Context) ([]salesforce.FolderRecord, error)
	Retrieve(ctx context.Context, manifestPath string) error
}

// Replacer runs the field replacement flow end to end.
type Replacer struct {
	client OrgClient
	cfg    *config.ReplaceConfig
	layout Layout
	logger *zap.Logger
}

// NewReplacer creates a Replacer. The client may be nil when a local
// reports path is configured, since no org calls happen in that mode.
func NewReplacer(client OrgClient, cfg *config.ReplaceConfig, layout Layout, logger *zap.Logger) *Replacer {
	return &Replacer{
		client: client,
		cfg:    cfg,
		layout: layout,
		logger: logger,
	}
}

// Run executes the replacement flow and returns the run summary. With a
// reports path configured it does a single search-replace pass over the
// existing files; otherwise it retrieves reports from the org batch by
// batch, rewriting each batch as it lands.
func (r *Replacer) Run(ctx context.Context) (*report.Summary, error) {
	if err := r.layout.Ensure(); err != nil {
		return nil, err
	}

	r.logger.Info("starting report field replacement",
		zap.String("old_field", r.cfg.OldField),
		zap.String("new_field", r.cfg.NewField),
		zap.Bool("dry_run", r.cfg.DryRun))

	if r.cfg.ReportsPath != "" {
		return r.runLocal()
	}
	return r.runOrg(ctx)
}

// runLocal rewrites reports already on disk, skipping org retrieval.
func (r *Replacer) runLocal() (*report.Summary, error) {
	if _, err := os.Stat(r.cfg.ReportsPath); err != nil {
		return nil, errors.NewConfigErrorWithPath(r.cfg.ReportsPath, "reports path does not exist", err)
	}

	r.logger.Info("using existing reports, skipping retrieval",
		zap.String("path", r.cfg.ReportsPath))

	summary := &report.Summary{DryRun: r.cfg.DryRun}
	result, err := r.newEngine().Run(r.cfg.ReportsPath)
	if err != nil {
		return nil, err
	}
	summary.FilesScanned = result.Scanned
	summary.FileErrors = result.Errors
	summary.Updated = result.Identifiers()

	return summary, r.writeFinalManifest(summary)
}

// runOrg retrieves reports from the org in batches, rewriting each batch
// after it lands. A failed batch is logged and skipped; the run continues.
func (r *Replacer) runOrg(ctx context.Context) (*report.Summary, error) {
	summary := &report.Summary{DryRun: r.cfg.DryRun}

	records, err := r.client.GetReports(ctx, "")
	if err != nil {
		return nil, err
	}
	summary.ReportsFound = len(records)
	if len(records) == 0 {
		r.logger.Warn("no reports found in the org")
		return summary, nil
	}
	r.logger.Info("found reports to process", zap.Int("count", len(records)))

	identifiers := r.resolveIdentifiers(ctx, records, summary)
	batches := batch.Split(identifiers, r.cfg.BatchSize)
	summary.Batches = len(batches)
	r.logger.Info("processing in batches",
		zap.Int("reports", len(identifiers)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", r.cfg.BatchSize))

	engine := r.newEngine()
	for i, members := range batches {
		num := i + 1
		manifestPath := r.layout.BatchManifest(num)

		// The batch manifest is written even when retrieval fails, so the
		// batch can be retried or inspected externally.
		if err := manifest.Write(manifestPath, members); err != nil {
			summary.FailedBatches++
			r.logger.Warn("failed to write batch manifest",
				zap.Int("batch", num), zap.Error(err))
			continue
		}

		if err := r.client.Retrieve(ctx, manifestPath); err != nil {
			summary.FailedBatches++
			r.logger.Warn("failed to retrieve batch, continuing",
				zap.Int("batch", num), zap.Error(err))
			continue
		}
		r.logger.Info("retrieved batch",
			zap.Int("batch", num), zap.Int("reports", len(members)))

		// The engine rescans the whole reports root, not just this batch's
		// files. Harmless in a real run (earlier batches no longer match),
		// but in dry-run mode nothing is rewritten, so files from earlier
		// batches are re-detected and can repeat in the change list.
		result, err := engine.Run(r.layout.ReportsPath)
		if err != nil {
			summary.FailedBatches++
			r.logger.Warn("search-replace failed for batch",
				zap.Int("batch", num), zap.Error(err))
			continue
		}
		summary.FilesScanned += result.Scanned
		summary.FileErrors += result.Errors
		summary.Updated = append(summary.Updated, result.Identifiers()...)
	}

	return summary, r.writeFinalManifest(summary)
}

// resolveIdentifiers maps report records to manifest identifiers, counting
// skipped records and folder-name fallbacks.
func (r *Replacer) resolveIdentifiers(ctx context.Context, records []salesforce.ReportRecord, summary *report.Summary) []string {
	folders, err := r.client.GetFolders(ctx)
	if err != nil {
		r.logger.Warn("could not retrieve folders, will use folder names as-is", zap.Error(err))
	}
	folderMap := resolve.NewFolderMap(folders)
	r.logger.Debug("built folder mapping", zap.Int("folders", len(folderMap)))

	identifiers := make([]string, 0, len(records))
	for _, rec := range records {
		res, ok := resolve.Resolve(rec, folderMap)
		if !ok {
			summary.SkippedNoName++
			r.logger.Debug("skipping report without developer name", zap.String("name", rec.Name))
			continue
		}
		if res.FallbackUsed {
			summary.Fallbacks++
			r.logger.Warn("folder not in mapping, using fallback identifier",
				zap.String("folder", rec.FolderName),
				zap.String("identifier", res.Identifier))
		}
		identifiers = append(identifiers, res.Identifier)
	}
	summary.Identifiers = len(identifiers)
	return identifiers
}

func (r *Replacer) newEngine() *replace.Engine {
	return replace.NewEngine(
		r.cfg.OldField,
		r.cfg.NewField,
		r.cfg.DryRun,
		backup.NewManager(r.layout.BackupDir()),
		r.logger,
	)
}

// writeFinalManifest packages the accumulated change records for redeploy.
// Nothing is written when no reports changed.
func (r *Replacer) writeFinalManifest(summary *report.Summary) error {
	wrote, err := manifest.WriteFinal(r.layout.FinalManifest(), summary.Updated)
	if err != nil {
		return err
	}
	if !wrote {
		r.logger.Warn("no reports were updated, nothing to deploy")
		return nil
	}
	summary.ManifestPath = r.layout.FinalManifest()
	r.logger.Info("wrote deploy manifest",
		zap.String("path", summary.ManifestPath),
		zap.Int("reports", len(summary.Updated)))
	return nil
}
