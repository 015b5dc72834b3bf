package criticality

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"asset-inventory/feature/criticality/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrRecordResolved is returned when a mutation targets a resolved record.
	ErrRecordResolved = errors.New("criticality record is resolved")
	// ErrRecordNotFound is returned when a record does not exist.
	ErrRecordNotFound = errors.New("criticality record not found")
	// ErrRecordExists is returned when an asset already has a record.
	ErrRecordExists = errors.New("asset already has a criticality record")
	// ErrAssetNotFound is returned when an asset does not exist.
	ErrAssetNotFound = errors.New("asset not found")
)

// AssetStore reads the inventory and toggles the engine-maintained flag.
type AssetStore interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	SetCriticalFlag(ctx context.Context, assetID uint, value bool) error
}

// MaintenanceStore reads maintenance history.
type MaintenanceStore interface {
	ListTasks(ctx context.Context) ([]models.MaintenanceTask, error)
}

// RecordFields are the engine-owned columns of a criticality record.
type RecordFields struct {
	PriorityTierID uint
	Tier           string
	Score          int
	ActionRequired string
	CostEstimate   *float64
	Deadline       time.Time
	Evidence       []string
}

// RecordStore persists the criticality ledger.
// Update and Delete must refuse resolved records with ErrRecordResolved.
type RecordStore interface {
	ListRecords(ctx context.Context) ([]models.CriticalityRecord, error)
	InsertRecord(ctx context.Context, record *models.CriticalityRecord) error
	UpdateRecord(ctx context.Context, id uint, fields RecordFields) error
	DeleteRecord(ctx context.Context, id uint) error
}

// GormStore implements every store interface of the engine on one database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the inventory tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate inventory schema: %w", err)
	}
	return nil
}

// DefaultTiers is the catalog seeded into an empty priority_tiers table.
var DefaultTiers = []models.PriorityTier{
	{Name: "Critical", Rank: 1},
	{Name: "Medium", Rank: 2},
	{Name: "Low", Rank: 3},
}

// SeedCatalog inserts DefaultTiers when the catalog is empty.
// It returns the number of tiers created.
func (s *GormStore) SeedCatalog(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PriorityTier{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count priority tiers: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	tiers := make([]models.PriorityTier, len(DefaultTiers))
	copy(tiers, DefaultTiers)
	if err := s.db.WithContext(ctx).Create(&tiers).Error; err != nil {
		return 0, fmt.Errorf("failed to seed priority tiers: %w", err)
	}
	return len(tiers), nil
}

// ListAssets returns every asset ordered by id.
func (s *GormStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.WithContext(ctx).Order("id").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// GetAsset returns one asset.
func (s *GormStore) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).First(&asset, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("asset %d: %w", id, ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %d: %w", id, err)
	}
	return &asset, nil
}

// SetCriticalFlag sets the engine-maintained flag of an asset.
func (s *GormStore) SetCriticalFlag(ctx context.Context, assetID uint, value bool) error {
	result := s.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("id = ?", assetID).
		Update("is_critical", value)
	if result.Error != nil {
		return fmt.Errorf("failed to set critical flag on asset %d: %w", assetID, result.Error)
	}
	return nil
}

// SetEvidence replaces the evidence URLs of an asset.
func (s *GormStore) SetEvidence(ctx context.Context, assetID uint, urls []string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Asset{ID: assetID}).
		Select("evidence", "updated_at").
		Updates(&models.Asset{Evidence: urls, UpdatedAt: time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to set evidence on asset %d: %w", assetID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", assetID, ErrAssetNotFound)
	}
	return nil
}

// ListTasks returns every maintenance task ordered by id.
func (s *GormStore) ListTasks(ctx context.Context) ([]models.MaintenanceTask, error) {
	var tasks []models.MaintenanceTask
	if err := s.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance tasks: %w", err)
	}
	return tasks, nil
}

// LookupTier resolves a catalog key. A numeric key matches the tier rank,
// anything else matches the tier name case-insensitively.
func (s *GormStore) LookupTier(ctx context.Context, key string) (uint, error) {
	q := s.db.WithContext(ctx).Model(&models.PriorityTier{})
	if rank, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		q = q.Where("tier_rank = ?", rank)
	} else {
		q = q.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(key)))
	}

	var tier models.PriorityTier
	err := q.First(&tier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("catalog key %q: %w", key, ErrTierNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up priority tier %q: %w", key, err)
	}
	return tier.ID, nil
}

// ListTiers returns the catalog ordered by rank.
func (s *GormStore) ListTiers(ctx context.Context) ([]models.PriorityTier, error) {
	var tiers []models.PriorityTier
	if err := s.db.WithContext(ctx).Order("tier_rank").Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("failed to list priority tiers: %w", err)
	}
	return tiers, nil
}

// ListRecords returns the whole ledger ordered by id.
func (s *GormStore) ListRecords(ctx context.Context) ([]models.CriticalityRecord, error) {
	var records []models.CriticalityRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list criticality records: %w", err)
	}
	return records, nil
}

// FindRecords returns ledger entries, optionally filtered by resolution state.
func (s *GormStore) FindRecords(ctx context.Context, resolved *bool) ([]models.CriticalityRecord, error) {
	q := s.db.WithContext(ctx).Order("deadline").Order("id")
	if resolved != nil {
		q = q.Where("resolved = ?", *resolved)
	}
	var records []models.CriticalityRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find criticality records: %w", err)
	}
	return records, nil
}

// GetRecord returns one ledger entry.
func (s *GormStore) GetRecord(ctx context.Context, id uint) (*models.CriticalityRecord, error) {
	var record models.CriticalityRecord
	err := s.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("record %d: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return &record, nil
}

// InsertRecord creates a ledger entry. The unique index on asset_id turns a
// concurrent duplicate insert into ErrRecordExists instead of a second row.
func (s *GormStore) InsertRecord(ctx context.Context, record *models.CriticalityRecord) error {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return fmt.Errorf("failed to insert record for asset %d: %w", record.AssetID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("asset %d: %w", record.AssetID, ErrRecordExists)
	}
	return nil
}

// UpdateRecord rewrites the engine-owned columns of an unresolved record.
func (s *GormStore) UpdateRecord(ctx context.Context, id uint, fields RecordFields) error {
	values := models.CriticalityRecord{
		PriorityTierID: fields.PriorityTierID,
		Tier:           fields.Tier,
		Score:          fields.Score,
		ActionRequired: fields.ActionRequired,
		CostEstimate:   fields.CostEstimate,
		Deadline:       fields.Deadline,
		Evidence:       fields.Evidence,
		UpdatedAt:      time.Now(),
	}
	result := s.db.WithContext(ctx).
		Model(&models.CriticalityRecord{}).
		Where("id = ? AND resolved = ?", id, false).
		Select("priority_tier_id", "tier", "score", "action_required", "cost_estimate", "deadline", "evidence", "updated_at").
		Updates(&values)
	if result.Error != nil {
		return fmt.Errorf("failed to update record %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return s.explainMiss(ctx, id)
	}
	return nil
}

// DeleteRecord removes an unresolved record.
func (s *GormStore) DeleteRecord(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND resolved = ?", id, false).
		Delete(&models.CriticalityRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return s.explainMiss(ctx, id)
	}
	return nil
}

// ResolveRecord marks a record as remediated. Resolving is the only transition
// a resolved record ever goes through.
func (s *GormStore) ResolveRecord(ctx context.Context, id uint, notes string, at time.Time) (*models.CriticalityRecord, error) {
	result := s.db.WithContext(ctx).
		Model(&models.CriticalityRecord{}).
		Where("id = ? AND resolved = ?", id, false).
		Updates(map[string]any{
			"resolved":         true,
			"resolution_notes": notes,
			"resolved_at":      at,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to resolve record %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, s.explainMiss(ctx, id)
	}
	return s.GetRecord(ctx, id)
}

// explainMiss tells a resolved record apart from a missing one after a guarded write matched nothing.
func (s *GormStore) explainMiss(ctx context.Context, id uint) error {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if record.Resolved {
		return fmt.Errorf("record %d: %w", id, ErrRecordResolved)
	}
	return fmt.Errorf("record %d: no rows changed", id)
}
