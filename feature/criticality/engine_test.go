package criticality

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"asset-inventory/feature/criticality/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, store *GormStore, records RecordStore) *Engine {
	t.Helper()
	if records == nil {
		records = store
	}
	engine := NewEngine(Stores{Assets: store, Tasks: store, Records: records, Catalog: store}, DefaultConfig(), zap.NewNop())
	engine.now = func() time.Time { return testNow }
	return engine
}

// seedInventory stores the three reference assets:
//
//	1: marked critical and out of service (CRITICAL)
//	2: six years old with a stale unresolved record (below threshold)
//	3: three pending tasks (MEDIUM)
func seedInventory(t *testing.T, store *GormStore) {
	t.Helper()
	ctx := context.Background()
	db := store.db.WithContext(ctx)

	require.NoError(t, db.Create(&[]models.Asset{
		{ID: 1, Code: "GEN-1", MarkedCritical: true, State: "Out of Service", EstimatedCost: "12,000", Evidence: []string{"http://s/evidence/1/a.jpg"}},
		{ID: 2, Code: "AC-2", AgeYears: "6", IsCritical: true},
		{ID: 3, Code: "PMP-3", State: "operational"},
	}).Error)

	tasks := []models.MaintenanceTask{
		recentlyServiced(1), recentlyServiced(2), recentlyServiced(3),
		pendingTask(3, nil), pendingTask(3, nil), pendingTask(3, nil),
	}
	require.NoError(t, db.Create(&tasks).Error)

	require.NoError(t, db.Create(&models.CriticalityRecord{AssetID: 2, PriorityTierID: 2, Tier: "MEDIUM", Score: 33, Deadline: testNow}).Error)
}

func recordsByAsset(t *testing.T, store *GormStore) map[uint]models.CriticalityRecord {
	t.Helper()
	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	out := make(map[uint]models.CriticalityRecord, len(records))
	for _, r := range records {
		out[r.AssetID] = r
	}
	return out
}

func flagsByAsset(t *testing.T, store *GormStore) map[uint]bool {
	t.Helper()
	assets, err := store.ListAssets(context.Background())
	require.NoError(t, err)
	out := make(map[uint]bool, len(assets))
	for _, a := range assets {
		out[a.ID] = a.IsCritical
	}
	return out
}

func TestEngine_SynchronizeAndIdempotence(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	stats, err := engine.Synchronize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalQualified: 2,
		Inserted:       2,
		Deleted:        1,
		FlagsSet:       2,
		FlagsCleared:   1,
		Breakdown:      Breakdown{Critical: 1, Medium: 1},
	}, stats)

	records := recordsByAsset(t, store)
	require.Len(t, records, 2)

	critical := records[1]
	assert.Equal(t, "CRITICAL", critical.Tier)
	assert.Equal(t, 70, critical.Score)
	assert.Equal(t, "Marked as critical for operation; Out of service — immediate operational impact", critical.ActionRequired)
	assert.True(t, critical.Deadline.Equal(testNow.AddDate(0, 0, 7)))
	require.NotNil(t, critical.CostEstimate)
	assert.Equal(t, 12000.0, *critical.CostEstimate)
	assert.Equal(t, []string{"http://s/evidence/1/a.jpg"}, critical.Evidence)

	medium := records[3]
	assert.Equal(t, "MEDIUM", medium.Tier)
	assert.Equal(t, 30, medium.Score)
	assert.True(t, medium.Deadline.Equal(testNow.AddDate(0, 0, 90)))

	assert.Equal(t, map[uint]bool{1: true, 2: false, 3: true}, flagsByAsset(t, store))

	again, err := engine.Synchronize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalQualified: 2,
		Unchanged:      2,
		Breakdown:      Breakdown{Critical: 1, Medium: 1},
	}, again)
	assert.Equal(t, records, recordsByAsset(t, store))
}

func TestEngine_ResolvedRecordStaysUntouched(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)
	ctx := context.Background()

	_, err := engine.Synchronize(ctx)
	require.NoError(t, err)

	before := recordsByAsset(t, store)[1]
	_, err = store.ResolveRecord(ctx, before.ID, "generator replaced", testNow)
	require.NoError(t, err)
	resolved := recordsByAsset(t, store)[1]

	// The asset gets worse, but its resolved record must not follow.
	require.NoError(t, store.db.Model(&models.Asset{}).Where("id = ?", 1).Update("estimated_cost", "9,000,000").Error)

	stats, err := engine.Synchronize(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Updated)
	assert.Zero(t, stats.Inserted)
	assert.Equal(t, 2, stats.Unchanged)

	assert.Equal(t, resolved, recordsByAsset(t, store)[1])
	assert.True(t, flagsByAsset(t, store)[1])
}

func TestEngine_RestoresDriftedFlag(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)
	ctx := context.Background()

	_, err := engine.Synchronize(ctx)
	require.NoError(t, err)

	require.NoError(t, store.SetCriticalFlag(ctx, 3, false))
	require.NoError(t, store.SetCriticalFlag(ctx, 2, true))

	stats, err := engine.Synchronize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FlagsSet)
	assert.Equal(t, 1, stats.FlagsCleared)
	assert.Equal(t, map[uint]bool{1: true, 2: false, 3: true}, flagsByAsset(t, store))
}

// failingRecords rejects inserts for one asset.
type failingRecords struct {
	*GormStore
	assetID uint
}

func (f failingRecords) InsertRecord(ctx context.Context, record *models.CriticalityRecord) error {
	if record.AssetID == f.assetID {
		return errors.New("disk full")
	}
	return f.GormStore.InsertRecord(ctx, record)
}

func TestEngine_PartialFailureContinues(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)

	core, logs := observer.New(zap.WarnLevel)
	engine := NewEngine(Stores{Assets: store, Tasks: store, Records: failingRecords{GormStore: store, assetID: 1}, Catalog: store}, DefaultConfig(), zap.New(core))
	engine.now = func() time.Time { return testNow }

	result, err := engine.Run(context.Background(), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 1, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.FlagsSet)
	assert.Equal(t, Breakdown{Medium: 1}, result.Stats.Breakdown)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "1", result.Failures[0].Action.Key)

	records := recordsByAsset(t, store)
	assert.NotContains(t, records, uint(1))
	assert.Contains(t, records, uint(3))
	// no record for asset 1, so its flag must stay unset
	assert.Equal(t, map[uint]bool{1: false, 2: false, 3: true}, flagsByAsset(t, store))

	assert.Equal(t, 1, logs.FilterMessage("Reconcile action failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Skipping flag change after failed record action").Len())
}

func TestEngine_MissingTierAbortsBeforeMutation(t *testing.T) {
	store := newTestStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	stats, err := engine.Synchronize(context.Background())
	assert.ErrorIs(t, err, ErrTierNotFound)
	assert.Nil(t, stats)

	records := recordsByAsset(t, store)
	assert.Len(t, records, 1)
	assert.Contains(t, records, uint(2))
	assert.Equal(t, map[uint]bool{1: false, 2: true, 3: false}, flagsByAsset(t, store))
}

func TestEngine_DryRunWritesNothing(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	result, err := engine.Run(context.Background(), RunOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Stats.Inserted)
	assert.Equal(t, 1, result.Stats.Deleted)
	assert.Len(t, result.Plan.Actions, 6)

	assert.Len(t, recordsByAsset(t, store), 1)
	assert.Equal(t, map[uint]bool{1: false, 2: true, 3: false}, flagsByAsset(t, store))
}

func TestEngine_ConcurrentRunsKeepOneRecordPerAsset(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Synchronize(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestEngine_JudgmentsAreReadOnly(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	judgments, err := engine.Judgments(context.Background())
	require.NoError(t, err)
	require.Len(t, judgments, 2)
	assert.Equal(t, uint(1), judgments[0].AssetID)
	assert.Equal(t, uint(3), judgments[1].AssetID)

	assert.Len(t, recordsByAsset(t, store), 1)
}

func TestEngine_CancelledContext(t *testing.T) {
	store := newSeededStore(t)
	seedInventory(t, store)
	engine := newTestEngine(t, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Synchronize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
