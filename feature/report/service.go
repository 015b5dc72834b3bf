package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"asset-inventory/core/storage"
	"asset-inventory/feature/criticality"
	"asset-inventory/feature/criticality/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchivePrefix is the bucket folder holding archived reports.
const ArchivePrefix = "reports/"

// Synchronizer refreshes the ledger before a report is built.
type Synchronizer interface {
	Synchronize(ctx context.Context) (*criticality.Stats, error)
}

// Source reads the ledger and the assets it refers to.
type Source interface {
	FindRecords(ctx context.Context, resolved *bool) ([]models.CriticalityRecord, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
}

// Options controls which records a report includes.
type Options struct {
	IncludeResolved bool
}

// Service builds and archives consolidated reports.
type Service struct {
	syncer Synchronizer
	source Source
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new report service.
func NewService(syncer Synchronizer, source Source, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		syncer: syncer,
		source: source,
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Generate synchronizes the ledger and returns the consolidated report.
// It fails when the synchronization fails.
func (s *Service) Generate(ctx context.Context, opts Options) (*Report, error) {
	stats, err := s.syncer.Synchronize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to synchronize before report: %w", err)
	}

	var filter *bool
	if !opts.IncludeResolved {
		unresolved := false
		filter = &unresolved
	}
	records, err := s.source.FindRecords(ctx, filter)
	if err != nil {
		return nil, err
	}
	assets, err := s.source.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt: s.now(),
		Stats:       stats,
		Rows:        buildRows(records, assets),
	}, nil
}

// Archive stores the CSV rendering of a report in the bucket and returns its object key.
func (s *Service) Archive(ctx context.Context, rep *Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		return "", err
	}

	key := ArchivePrefix + "criticality-" + rep.GeneratedAt.UTC().Format("20060102T150405Z") + ".csv"
	_, err := s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive report %s: %w", key, err)
	}

	s.logger.Info("Report archived", zap.String("key", key), zap.Int("rows", len(rep.Rows)))
	return key, nil
}
