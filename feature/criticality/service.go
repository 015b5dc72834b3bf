package criticality

import (
	"context"
	"time"

	"asset-inventory/feature/criticality/models"

	"go.uber.org/zap"
)

// Service exposes the engine and the ledger to transports.
type Service struct {
	engine *Engine
	store  *GormStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new criticality service.
func NewService(engine *Engine, store *GormStore, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Synchronize runs the engine, optionally as a dry run.
func (s *Service) Synchronize(ctx context.Context, dryRun bool) (*Result, error) {
	return s.engine.Run(ctx, RunOptions{DryRun: dryRun})
}

// Judgments returns the current judgment set without persisting it.
func (s *Service) Judgments(ctx context.Context) ([]Judgment, error) {
	return s.engine.Judgments(ctx)
}

// Records lists the ledger. A nil filter returns resolved and unresolved records.
func (s *Service) Records(ctx context.Context, resolved *bool) ([]models.CriticalityRecord, error) {
	return s.store.FindRecords(ctx, resolved)
}

// Resolve closes a record with the given notes.
func (s *Service) Resolve(ctx context.Context, id uint, notes string) (*models.CriticalityRecord, error) {
	record, err := s.store.ResolveRecord(ctx, id, notes, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("Criticality record resolved", zap.Uint("record_id", id), zap.Uint("asset_id", record.AssetID))
	return record, nil
}
