package criticality

import (
	"testing"

	"asset-inventory/core/reconcile"
	"asset-inventory/feature/criticality/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTiers(t *testing.T) TierSet {
	t.Helper()
	tiers, err := NewTierSet(map[Tier]uint{TierCritical: 1, TierHigh: 1, TierMedium: 2})
	require.NoError(t, err)
	return tiers
}

func judgmentFor(assetID uint, score int, reasons ...string) Judgment {
	tier, _ := Classify(score)
	return Judgment{AssetID: assetID, Score: score, Reasons: reasons, Tier: tier, Deadline: tier.Deadline(testNow)}
}

type plannedAction struct {
	Type reconcile.ActionType
	Key  string
}

func plannedActions(p *reconcile.Plan) []plannedAction {
	out := make([]plannedAction, 0, len(p.Actions))
	for _, a := range p.Actions {
		out = append(out, plannedAction{Type: a.Type, Key: a.Key})
	}
	return out
}

func TestPlanReconcile_InsertsNewJudgment(t *testing.T) {
	in := PlanInput{
		Judgments: []Judgment{judgmentFor(1, 70, "a", "b")},
		Assets:    []models.Asset{{ID: 1, EstimatedCost: "1,200", Evidence: []string{"http://x/1.jpg"}}},
		Tiers:     testTiers(t),
	}

	plan := PlanReconcile(in)

	want := []plannedAction{
		{reconcile.ActionInsert, "1"},
		{reconcile.ActionSetFlag, "1"},
	}
	if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}

	record, ok := plan.Actions[0].Payload.(*models.CriticalityRecord)
	require.True(t, ok)
	assert.Equal(t, uint(1), record.AssetID)
	assert.Equal(t, uint(1), record.PriorityTierID)
	assert.Equal(t, "CRITICAL", record.Tier)
	assert.Equal(t, "a; b", record.ActionRequired)
	assert.Equal(t, testNow.AddDate(0, 0, 7), record.Deadline)
	require.NotNil(t, record.CostEstimate)
	assert.Equal(t, 1200.0, *record.CostEstimate)
	assert.Equal(t, []string{"http://x/1.jpg"}, record.Evidence)
	assert.False(t, record.Resolved)
}

func TestPlanReconcile_CurrentRecordIsUnchanged(t *testing.T) {
	j := judgmentFor(1, 30, "3 pending")
	in := PlanInput{
		Judgments: []Judgment{j},
		Records: []models.CriticalityRecord{{
			ID: 10, AssetID: 1, PriorityTierID: 2, Tier: "MEDIUM", Score: 30,
			ActionRequired: "3 pending", Deadline: testNow.AddDate(0, 0, 80),
		}},
		Assets: []models.Asset{{ID: 1, IsCritical: true}},
		Tiers:  testTiers(t),
	}

	plan := PlanReconcile(in)

	assert.True(t, plan.IsEmpty())
	assert.Equal(t, 1, plan.Summary.Unchanged)
}

func TestPlanReconcile_UpdateKeepsDeadlineWithinTier(t *testing.T) {
	original := testNow.AddDate(0, 0, 60)
	in := PlanInput{
		Judgments: []Judgment{judgmentFor(1, 35, "x")},
		Records:   []models.CriticalityRecord{{ID: 10, AssetID: 1, PriorityTierID: 2, Tier: "MEDIUM", Score: 30, ActionRequired: "x", Deadline: original}},
		Assets:    []models.Asset{{ID: 1, IsCritical: true}},
		Tiers:     testTiers(t),
	}

	plan := PlanReconcile(in)

	updates := plan.ActionsOf(reconcile.ActionUpdate)
	require.Len(t, updates, 1)
	update := updates[0].Payload.(RecordUpdate)
	assert.Equal(t, uint(10), update.RecordID)
	assert.Equal(t, 35, update.Fields.Score)
	assert.Equal(t, original, update.Fields.Deadline)
	assert.Empty(t, plan.ActionsOf(reconcile.ActionSetFlag))
}

func TestPlanReconcile_TierChangeMovesDeadline(t *testing.T) {
	in := PlanInput{
		Judgments: []Judgment{judgmentFor(1, 75, "x")},
		Records:   []models.CriticalityRecord{{ID: 10, AssetID: 1, PriorityTierID: 2, Tier: "MEDIUM", Score: 30, ActionRequired: "x", Deadline: testNow.AddDate(0, 0, 60)}},
		Assets:    []models.Asset{{ID: 1, IsCritical: true}},
		Tiers:     testTiers(t),
	}

	plan := PlanReconcile(in)

	update := plan.ActionsOf(reconcile.ActionUpdate)[0].Payload.(RecordUpdate)
	assert.Equal(t, "CRITICAL", update.Fields.Tier)
	assert.Equal(t, uint(1), update.Fields.PriorityTierID)
	assert.Equal(t, testNow.AddDate(0, 0, 7), update.Fields.Deadline)
}

func TestPlanReconcile_NoLongerQualifying(t *testing.T) {
	in := PlanInput{
		Records: []models.CriticalityRecord{{ID: 10, AssetID: 2, Tier: "MEDIUM", Score: 33}},
		Assets:  []models.Asset{{ID: 2, IsCritical: true}},
		Tiers:   testTiers(t),
	}

	plan := PlanReconcile(in)

	want := []plannedAction{
		{reconcile.ActionDelete, "2"},
		{reconcile.ActionClearFlag, "2"},
	}
	if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint(10), plan.Actions[0].Payload)
}

func TestPlanReconcile_ResolvedRecordIsNeverTouched(t *testing.T) {
	resolved := models.CriticalityRecord{ID: 10, AssetID: 1, Tier: "MEDIUM", Score: 25, Resolved: true}

	t.Run("still qualifying keeps flag", func(t *testing.T) {
		plan := PlanReconcile(PlanInput{
			Judgments:         []Judgment{judgmentFor(1, 90, "worse now")},
			Records:           []models.CriticalityRecord{resolved},
			Assets:            []models.Asset{{ID: 1, IsCritical: true}},
			Tiers:             testTiers(t),
			ResolvedKeepsFlag: true,
		})
		assert.True(t, plan.IsEmpty())
		assert.Equal(t, 1, plan.Summary.Unchanged)
	})

	t.Run("still qualifying strict flag", func(t *testing.T) {
		plan := PlanReconcile(PlanInput{
			Judgments: []Judgment{judgmentFor(1, 90, "worse now")},
			Records:   []models.CriticalityRecord{resolved},
			Assets:    []models.Asset{{ID: 1, IsCritical: true}},
			Tiers:     testTiers(t),
		})
		want := []plannedAction{{reconcile.ActionClearFlag, "1"}}
		if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
			t.Errorf("plan mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no longer qualifying", func(t *testing.T) {
		plan := PlanReconcile(PlanInput{
			Records:           []models.CriticalityRecord{resolved},
			Assets:            []models.Asset{{ID: 1, IsCritical: true}},
			Tiers:             testTiers(t),
			ResolvedKeepsFlag: true,
		})
		want := []plannedAction{{reconcile.ActionClearFlag, "1"}}
		if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
			t.Errorf("plan mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPlanReconcile_CollapsesDuplicates(t *testing.T) {
	older := models.CriticalityRecord{ID: 10, AssetID: 1, Tier: "MEDIUM", Score: 30, ActionRequired: "x", UpdatedAt: testNow.AddDate(0, 0, -10)}
	newer := models.CriticalityRecord{ID: 11, AssetID: 1, Tier: "MEDIUM", Score: 30, ActionRequired: "x", UpdatedAt: testNow.AddDate(0, 0, -1)}

	plan := PlanReconcile(PlanInput{
		Judgments: []Judgment{judgmentFor(1, 30, "x")},
		Records:   []models.CriticalityRecord{older, newer},
		Assets:    []models.Asset{{ID: 1, IsCritical: true}},
		Tiers:     testTiers(t),
	})

	deletes := plan.ActionsOf(reconcile.ActionDelete)
	require.Len(t, deletes, 1)
	assert.Equal(t, uint(10), deletes[0].Payload)
	// the kept row differs by tier id and deadline only
	updates := plan.ActionsOf(reconcile.ActionUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, uint(11), updates[0].Payload.(RecordUpdate).RecordID)
}

func TestPlanReconcile_DuplicatesNextToResolvedRecord(t *testing.T) {
	plan := PlanReconcile(PlanInput{
		Judgments:         []Judgment{judgmentFor(1, 30, "x")},
		Records:           []models.CriticalityRecord{{ID: 10, AssetID: 1, Resolved: true}, {ID: 11, AssetID: 1}},
		Assets:            []models.Asset{{ID: 1, IsCritical: true}},
		Tiers:             testTiers(t),
		ResolvedKeepsFlag: true,
	})

	want := []plannedAction{{reconcile.ActionDelete, "1"}}
	if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint(11), plan.Actions[0].Payload)
}

func TestPlanReconcile_OrphanRecordHasNoFlagAction(t *testing.T) {
	plan := PlanReconcile(PlanInput{
		Records: []models.CriticalityRecord{{ID: 10, AssetID: 99}},
		Tiers:   testTiers(t),
	})

	want := []plannedAction{{reconcile.ActionDelete, "99"}}
	if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanReconcile_RestoresDriftedFlags(t *testing.T) {
	plan := PlanReconcile(PlanInput{
		Assets: []models.Asset{{ID: 1, IsCritical: true}, {ID: 2}, {ID: 3, IsCritical: false}},
		Tiers:  testTiers(t),
	})

	want := []plannedAction{{reconcile.ActionClearFlag, "1"}}
	if diff := cmp.Diff(want, plannedActions(plan)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanReconcile_ZeroCostHasNoEstimate(t *testing.T) {
	plan := PlanReconcile(PlanInput{
		Judgments: []Judgment{judgmentFor(1, 40, "x")},
		Assets:    []models.Asset{{ID: 1, EstimatedCost: "tbd"}},
		Tiers:     testTiers(t),
	})

	record := plan.ActionsOf(reconcile.ActionInsert)[0].Payload.(*models.CriticalityRecord)
	assert.Nil(t, record.CostEstimate)
	assert.Equal(t, "HIGH", record.Tier)
}
