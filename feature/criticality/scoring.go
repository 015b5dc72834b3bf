package criticality

import (
	"fmt"
	"math"
	"time"

	"asset-inventory/core/utils"
	"asset-inventory/feature/criticality/models"
)

// QualificationThreshold is the minimum score for an asset to be judged critical.
const QualificationThreshold = 20

const (
	pointsOperatorFlag = 30
	pointsOutOfService = 40
	pointsUnderRepair  = 25

	ageMinYears      = 5
	agePointsPerYear = 3
	agePointsCap     = 30

	highValueCost   = 5_000_000
	pointsHighValue = 20

	pendingBacklogMin = 2
	pointsPerPending  = 10
	pointsPerOverdue  = 15

	pointsStale = 15
	staleAfter  = 180 * 24 * time.Hour
)

// Score evaluates one asset and its maintenance history at time now.
// It returns the accumulated score and the matched reasons in rule order.
// Score is pure: it reads its arguments only.
func Score(asset models.Asset, tasks []models.MaintenanceTask, now time.Time) (int, []string) {
	score := 0
	reasons := make([]string, 0, 7)

	if asset.MarkedCritical {
		score += pointsOperatorFlag
		reasons = append(reasons, "Marked as critical for operation")
	}

	switch models.ParseAssetState(asset.State) {
	case models.StateOutOfService:
		score += pointsOutOfService
		reasons = append(reasons, "Out of service — immediate operational impact")
	case models.StateUnderRepair:
		score += pointsUnderRepair
		reasons = append(reasons, "Under repair — limited availability")
	}

	if years := int(math.Floor(utils.ParseNumber(asset.AgeYears))); years >= ageMinYears {
		score += min(years*agePointsPerYear, agePointsCap)
		reasons = append(reasons, fmt.Sprintf("High age (%d years) — failure risk", years))
	}

	if utils.ParseNumber(asset.EstimatedCost) >= highValueCost {
		score += pointsHighValue
		reasons = append(reasons, "High economic value — financial impact")
	}

	pending, overdue := 0, 0
	var lastCompleted *time.Time
	for i := range tasks {
		t := tasks[i]
		switch t.ParsedStatus() {
		case models.TaskPending:
			pending++
			if t.ScheduledAt != nil && t.ScheduledAt.Before(now) {
				overdue++
			}
		case models.TaskCompleted:
			// A completed task without a completion date cannot vouch for recency
			if t.CompletedAt != nil && (lastCompleted == nil || t.CompletedAt.After(*lastCompleted)) {
				lastCompleted = t.CompletedAt
			}
		}
	}

	if pending >= pendingBacklogMin {
		score += pointsPerPending * pending
		reasons = append(reasons, fmt.Sprintf("%d pending maintenance tasks — accumulated risk", pending))
	}

	if overdue > 0 {
		score += pointsPerOverdue * overdue
		reasons = append(reasons, fmt.Sprintf("%d overdue maintenance tasks — urgent attention required", overdue))
	}

	if lastCompleted == nil || now.Sub(*lastCompleted) > staleAfter {
		score += pointsStale
		reasons = append(reasons, "No maintenance in the last 6 months — deterioration risk")
	}

	return score, reasons
}

// Qualifies reports whether a score and its reasons produce a judgment.
func Qualifies(score int, reasons []string) bool {
	return score >= QualificationThreshold && len(reasons) > 0
}
