package criticality

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asset-inventory/core/reconcile"

	"go.uber.org/zap"
)

// Stores groups the persistence dependencies of the engine.
// GormStore satisfies all of them.
type Stores struct {
	Assets  AssetStore
	Tasks   MaintenanceStore
	Records RecordStore
	Catalog Catalog
}

// Breakdown counts qualifying assets per tier.
type Breakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

func (b *Breakdown) add(t Tier) {
	switch t {
	case TierCritical:
		b.Critical++
	case TierHigh:
		b.High++
	case TierMedium:
		b.Medium++
	}
}

// Stats summarizes one synchronization run.
type Stats struct {
	TotalQualified int       `json:"total_qualified"`
	Inserted       int       `json:"inserted"`
	Updated        int       `json:"updated"`
	Deleted        int       `json:"deleted"`
	Unchanged      int       `json:"unchanged"`
	Failed         int       `json:"failed"`
	FlagsSet       int       `json:"flags_set"`
	FlagsCleared   int       `json:"flags_cleared"`
	Breakdown      Breakdown `json:"breakdown"`
}

// RunOptions controls a single run.
type RunOptions struct {
	// DryRun computes the plan but applies nothing.
	DryRun bool
}

// Result is the full output of a run.
type Result struct {
	Stats     *Stats              `json:"stats"`
	DryRun    bool                `json:"dry_run"`
	Plan      *reconcile.Plan     `json:"plan"`
	Failures  []reconcile.Failure `json:"failures,omitempty"`
	Judgments []Judgment          `json:"-"`
}

// Engine evaluates the inventory and reconciles the criticality ledger.
type Engine struct {
	stores  Stores
	catalog Catalog
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time

	// mu serializes runs within the process.
	mu sync.Mutex
}

// NewEngine creates an engine. Catalog lookups are cached for cfg.CatalogTTL().
func NewEngine(stores Stores, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		stores:  stores,
		catalog: NewCachedCatalog(stores.Catalog, cfg.CatalogTTL()),
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Judgments evaluates the current inventory without writing anything.
func (e *Engine) Judgments(ctx context.Context) ([]Judgment, error) {
	assets, err := e.stores.Assets.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := e.stores.Tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return Evaluate(assets, tasks, e.now()), nil
}

// Synchronize runs a full evaluation and applies the resulting plan.
func (e *Engine) Synchronize(ctx context.Context) (*Stats, error) {
	result, err := e.Run(ctx, RunOptions{})
	if result == nil {
		return nil, err
	}
	return result.Stats, err
}

// Run evaluates the inventory, plans the ledger changes and, unless DryRun is
// set, applies them. Catalog and read failures abort before any mutation.
// Per-item write failures are counted in Stats.Failed and do not fail the run.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	began := time.Now()
	now := e.now()

	tiers, err := BindTiers(ctx, e.catalog, e.cfg.TierKeys())
	if err != nil {
		return nil, fmt.Errorf("priority catalog is incomplete: %w", err)
	}

	assets, err := e.stores.Assets.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := e.stores.Tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	records, err := e.stores.Records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	judgments := Evaluate(assets, tasks, now)
	plan := PlanReconcile(PlanInput{
		Judgments:         judgments,
		Records:           records,
		Assets:            assets,
		Tiers:             tiers,
		ResolvedKeepsFlag: e.cfg.ResolvedKeepsFlag,
	})

	mutator := &storeMutator{records: e.stores.Records, assets: e.stores.Assets}
	outcome, applyErr := reconcile.ApplyPlan(ctx, mutator, plan, reconcile.Options{DryRun: opts.DryRun}, e.logger)

	result := &Result{
		DryRun:    opts.DryRun,
		Plan:      plan,
		Judgments: judgments,
	}
	if outcome != nil {
		result.Failures = outcome.Failed
	}
	result.Stats = buildStats(judgments, plan, outcome, opts.DryRun)

	e.logger.Info("Criticality sync finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("qualified", result.Stats.TotalQualified),
		zap.Int("inserted", result.Stats.Inserted),
		zap.Int("updated", result.Stats.Updated),
		zap.Int("deleted", result.Stats.Deleted),
		zap.Int("unchanged", result.Stats.Unchanged),
		zap.Int("failed", result.Stats.Failed),
		zap.Int("flags_set", result.Stats.FlagsSet),
		zap.Int("flags_cleared", result.Stats.FlagsCleared),
		zap.Duration("duration", time.Since(began)))

	if applyErr != nil {
		return result, fmt.Errorf("criticality sync interrupted: %w", applyErr)
	}
	return result, nil
}

// buildStats counts what was applied. A dry run reports the planned counts instead.
func buildStats(judgments []Judgment, plan *reconcile.Plan, outcome *reconcile.Outcome, dryRun bool) *Stats {
	stats := &Stats{
		TotalQualified: len(judgments),
		Unchanged:      plan.Summary.Unchanged,
	}

	if dryRun || outcome == nil {
		stats.Inserted = plan.Summary.Inserts
		stats.Updated = plan.Summary.Updates
		stats.Deleted = plan.Summary.Deletes
		stats.FlagsSet = plan.Summary.FlagSets
		stats.FlagsCleared = plan.Summary.FlagClears
		for _, j := range judgments {
			stats.Breakdown.add(j.Tier)
		}
		return stats
	}

	stats.Inserted = outcome.Count(reconcile.ActionInsert)
	stats.Updated = outcome.Count(reconcile.ActionUpdate)
	stats.Deleted = outcome.Count(reconcile.ActionDelete)
	stats.FlagsSet = outcome.Count(reconcile.ActionSetFlag)
	stats.FlagsCleared = outcome.Count(reconcile.ActionClearFlag)
	stats.Failed = len(outcome.Failed)

	failed := outcome.FailedKeys()
	for _, j := range judgments {
		if _, ok := failed[assetKey(j.AssetID)]; ok {
			continue
		}
		stats.Breakdown.add(j.Tier)
	}
	return stats
}
