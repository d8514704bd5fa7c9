package workflow

import (
	"context"

	"go.uber.org/zap"

	"wingman/internal/batch"
	"wingman/internal/config"
	"wingman/internal/manifest"
	"wingman/internal/report"
	"wingman/internal/resolve"
)

// Puller retrieves report metadata from an org without modifying anything.
type Puller struct {
	client OrgClient
	cfg    *config.PullConfig
	layout Layout
	logger *zap.Logger
}

// NewPuller creates a Puller.
func NewPuller(client OrgClient, cfg *config.PullConfig, layout Layout, logger *zap.Logger) *Puller {
	return &Puller{
		client: client,
		cfg:    cfg,
		layout: layout,
		logger: logger,
	}
}

// Run retrieves all matching reports batch by batch. Failed batches are
// logged and skipped. The summary's Updated list holds every identifier a
// retrieval was attempted for.
func (p *Puller) Run(ctx context.Context) (*report.Summary, error) {
	if err := p.layout.Ensure(); err != nil {
		return nil, err
	}

	p.logger.Info("starting report retrieval (pull only)",
		zap.String("name_contains", p.cfg.NameContains),
		zap.Int("batch_size", p.cfg.BatchSize))

	summary := &report.Summary{}

	records, err := p.client.GetReports(ctx, p.cfg.NameContains)
	if err != nil {
		return nil, err
	}
	summary.ReportsFound = len(records)
	if len(records) == 0 {
		p.logger.Warn("no reports found in the org",
			zap.String("name_contains", p.cfg.NameContains))
		return summary, nil
	}

	folders, err := p.client.GetFolders(ctx)
	if err != nil {
		p.logger.Warn("could not retrieve folders, will use folder names as-is", zap.Error(err))
	}
	folderMap := resolve.NewFolderMap(folders)

	identifiers := make([]string, 0, len(records))
	for _, rec := range records {
		res, ok := resolve.Resolve(rec, folderMap)
		if !ok {
			summary.SkippedNoName++
			continue
		}
		if res.FallbackUsed {
			summary.Fallbacks++
			p.logger.Warn("folder not in mapping, using fallback identifier",
				zap.String("folder", rec.FolderName),
				zap.String("identifier", res.Identifier))
		}
		identifiers = append(identifiers, res.Identifier)
	}
	summary.Identifiers = len(identifiers)

	batches := batch.Split(identifiers, p.cfg.BatchSize)
	summary.Batches = len(batches)
	p.logger.Info("retrieving in batches", zap.Int("batches", len(batches)))

	for i, members := range batches {
		num := i + 1
		manifestPath := p.layout.BatchManifest(num)

		if err := manifest.Write(manifestPath, members); err != nil {
			summary.FailedBatches++
			p.logger.Warn("failed to write batch manifest",
				zap.Int("batch", num), zap.Error(err))
			continue
		}
		if err := p.client.Retrieve(ctx, manifestPath); err != nil {
			summary.FailedBatches++
			p.logger.Warn("failed to retrieve batch, continuing",
				zap.Int("batch", num), zap.Error(err))
			continue
		}
		summary.Updated = append(summary.Updated, members...)
		p.logger.Info("retrieved batch",
			zap.Int("batch", num), zap.Int("reports", len(members)))
	}

	p.logger.Info("report pull completed",
		zap.Int("retrieved", len(summary.Updated)),
		zap.String("path", p.layout.ReportsPath))
	return summary, nil
}
