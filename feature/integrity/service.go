package integrity

import (
	"context"
	"errors"
	"slices"

	"asset-inventory/core/storage"
	"asset-inventory/feature/criticality/models"
	"asset-inventory/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StructureResult is the outcome of a storage structure check.
type StructureResult struct {
	Status        string   `json:"status"` // "checked", "fixed"
	BucketCreated bool     `json:"bucket_created,omitempty"`
	Missing       []string `json:"missing"`
	Fixed         []string `json:"fixed,omitempty"`
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// Storage checks the bucket layout. With fix set, a missing bucket and
// missing folders are created.
func (s *Service) Storage(ctx context.Context, fix bool) (*StructureResult, error) {
	result := &StructureResult{Status: "checked"}

	missing, err := s.CheckStructure(ctx)
	if errors.Is(err, checks.ErrBucketMissing) && fix {
		created, mkErr := checks.EnsureBucket(ctx, s.client, s.bucket, s.region, s.logger)
		if mkErr != nil {
			return nil, mkErr
		}
		result.BucketCreated = created
		missing = slices.Clone(checks.RequiredFolders)
		err = nil
	}
	if err != nil {
		return nil, err
	}
	result.Missing = missing

	if len(missing) == 0 || !fix {
		return result, nil
	}

	if err := s.FixStructure(ctx, missing); err != nil {
		return result, err
	}
	result.Status = "fixed"
	result.Fixed = missing
	return result, nil
}

// CheckSchema compares the live tables with the inventory models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All())
}
