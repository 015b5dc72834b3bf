package criticality

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"asset-inventory/core/reconcile"
	"asset-inventory/core/utils"
	"asset-inventory/feature/criticality/models"
)

// RecordUpdate is the payload of an update action.
type RecordUpdate struct {
	RecordID uint
	Fields   RecordFields
}

// PlanInput bundles everything the planner diffs. Nothing in it is mutated.
type PlanInput struct {
	Judgments []Judgment
	Records   []models.CriticalityRecord
	Assets    []models.Asset
	Tiers     TierSet

	// ResolvedKeepsFlag keeps the flag set while a resolved record's asset still qualifies.
	ResolvedKeepsFlag bool
}

// ledgerEntry is the ledger state of one asset before the run.
type ledgerEntry struct {
	resolved   *models.CriticalityRecord
	active     *models.CriticalityRecord
	duplicates []models.CriticalityRecord
}

// PlanReconcile computes the edit plan that brings the ledger and the asset
// flags in line with the judgment set.
//
//   - no record: insert
//   - unresolved record that differs: update; identical: unchanged
//   - resolved record: unchanged, never touched
//   - unresolved record without judgment: delete
//   - extra unresolved rows for one asset: delete
//
// Flag actions are emitted only where the stored flag differs from the
// state the ledger will be in after the plan is applied.
func PlanReconcile(in PlanInput) *reconcile.Plan {
	plan := &reconcile.Plan{}

	ledger := indexLedger(in.Records)
	desiredFlag := make(map[uint]bool)
	judged := make(map[uint]struct{}, len(in.Judgments))

	assets := make(map[uint]models.Asset, len(in.Assets))
	for _, a := range in.Assets {
		assets[a.ID] = a
	}

	for _, j := range in.Judgments {
		judged[j.AssetID] = struct{}{}
		key := assetKey(j.AssetID)
		entry := ledger[j.AssetID]
		asset := assets[j.AssetID]

		switch {
		case entry != nil && entry.resolved != nil:
			plan.Keep(key, fmt.Sprintf("record %d is resolved", entry.resolved.ID))
			desiredFlag[j.AssetID] = in.ResolvedKeepsFlag

		case entry != nil && entry.active != nil:
			fields := desiredFields(j, asset, in.Tiers, entry.active)
			if fieldsEqual(entry.active, fields) {
				plan.Keep(key, fmt.Sprintf("record %d is current", entry.active.ID))
			} else {
				plan.Add(reconcile.Action{
					Type:    reconcile.ActionUpdate,
					Key:     key,
					Reason:  fmt.Sprintf("score %d (%s)", j.Score, j.Tier),
					Payload: RecordUpdate{RecordID: entry.active.ID, Fields: fields},
				})
			}
			desiredFlag[j.AssetID] = true

		default:
			fields := desiredFields(j, asset, in.Tiers, nil)
			plan.Add(reconcile.Action{
				Type:   reconcile.ActionInsert,
				Key:    key,
				Reason: fmt.Sprintf("score %d (%s)", j.Score, j.Tier),
				Payload: &models.CriticalityRecord{
					AssetID:        j.AssetID,
					PriorityTierID: fields.PriorityTierID,
					Tier:           fields.Tier,
					Score:          fields.Score,
					ActionRequired: fields.ActionRequired,
					CostEstimate:   fields.CostEstimate,
					Deadline:       fields.Deadline,
					Evidence:       fields.Evidence,
				},
			})
			desiredFlag[j.AssetID] = true
		}
	}

	for _, assetID := range sortedKeys(ledger) {
		entry := ledger[assetID]
		key := assetKey(assetID)

		for _, dup := range entry.duplicates {
			plan.Add(reconcile.Action{
				Type:    reconcile.ActionDelete,
				Key:     key,
				Reason:  fmt.Sprintf("duplicate record %d", dup.ID),
				Payload: dup.ID,
			})
		}

		if _, ok := judged[assetID]; !ok && entry.active != nil {
			plan.Add(reconcile.Action{
				Type:    reconcile.ActionDelete,
				Key:     key,
				Reason:  "no longer qualifies",
				Payload: entry.active.ID,
			})
		}
	}

	for _, a := range in.Assets {
		want := desiredFlag[a.ID]
		if a.IsCritical == want {
			continue
		}
		if want {
			plan.Add(reconcile.Action{Type: reconcile.ActionSetFlag, Key: assetKey(a.ID), Reason: "ledger holds a record"})
		} else {
			plan.Add(reconcile.Action{Type: reconcile.ActionClearFlag, Key: assetKey(a.ID), Reason: "no unresolved record"})
		}
	}

	return plan
}

// indexLedger groups records by asset. A resolved record wins over unresolved
// ones; among unresolved rows the most recently updated is kept active and
// the rest are duplicates.
func indexLedger(records []models.CriticalityRecord) map[uint]*ledgerEntry {
	grouped := make(map[uint][]models.CriticalityRecord)
	for _, r := range records {
		grouped[r.AssetID] = append(grouped[r.AssetID], r)
	}

	ledger := make(map[uint]*ledgerEntry, len(grouped))
	for assetID, rows := range grouped {
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
				return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
			}
			return rows[i].ID > rows[j].ID
		})

		entry := &ledgerEntry{}
		for i := range rows {
			r := rows[i]
			switch {
			case r.Resolved && entry.resolved == nil:
				entry.resolved = &r
			case r.Resolved:
				// frozen, left alone
			case entry.active == nil:
				entry.active = &r
			default:
				entry.duplicates = append(entry.duplicates, r)
			}
		}
		if entry.resolved != nil && entry.active != nil {
			entry.duplicates = append([]models.CriticalityRecord{*entry.active}, entry.duplicates...)
			entry.active = nil
		}
		ledger[assetID] = entry
	}
	return ledger
}

// desiredFields derives the engine-owned columns for a judgment. The deadline
// of an existing record only moves when its tier changes, so repeated runs
// over unchanged data leave the record alone.
func desiredFields(j Judgment, asset models.Asset, tiers TierSet, existing *models.CriticalityRecord) RecordFields {
	deadline := j.Deadline
	if existing != nil && existing.Tier == string(j.Tier) && !existing.Deadline.IsZero() {
		deadline = existing.Deadline
	}

	var cost *float64
	if v := utils.ParseNumber(asset.EstimatedCost); v > 0 {
		cost = &v
	}

	evidence := make([]string, len(asset.Evidence))
	copy(evidence, asset.Evidence)

	return RecordFields{
		PriorityTierID: tiers.ID(j.Tier),
		Tier:           string(j.Tier),
		Score:          j.Score,
		ActionRequired: j.ActionRequired(),
		CostEstimate:   cost,
		Deadline:       deadline,
		Evidence:       evidence,
	}
}

func fieldsEqual(r *models.CriticalityRecord, f RecordFields) bool {
	return r.PriorityTierID == f.PriorityTierID &&
		r.Tier == f.Tier &&
		r.Score == f.Score &&
		r.ActionRequired == f.ActionRequired &&
		costEqual(r.CostEstimate, f.CostEstimate) &&
		r.Deadline.Equal(f.Deadline) &&
		slices.Equal(r.Evidence, f.Evidence)
}

func costEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortedKeys(m map[uint]*ledgerEntry) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func assetKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseAssetKey(key string) (uint, error) {
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid asset key %q: %w", key, err)
	}
	return uint(id), nil
}
