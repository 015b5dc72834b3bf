package criticality

import (
	"strings"
	"time"

	"asset-inventory/feature/criticality/models"
)

// actionSeparator joins judgment reasons into the ledger's action text.
const actionSeparator = "; "

// Judgment is the per-run scoring output for one qualifying asset.
// It is rebuilt every run and never persisted directly.
type Judgment struct {
	AssetID  uint      `json:"asset_id"`
	Score    int       `json:"score"`
	Reasons  []string  `json:"reasons"`
	Tier     Tier      `json:"tier"`
	Deadline time.Time `json:"deadline"`
}

// ActionRequired returns the reasons joined as ledger action text.
func (j Judgment) ActionRequired() string {
	return strings.Join(j.Reasons, actionSeparator)
}

// Evaluate scores every asset against its maintenance history and returns
// the judgments of the qualifying ones, in asset order. It performs no writes.
func Evaluate(assets []models.Asset, tasks []models.MaintenanceTask, now time.Time) []Judgment {
	byAsset := make(map[uint][]models.MaintenanceTask)
	for _, t := range tasks {
		byAsset[t.AssetID] = append(byAsset[t.AssetID], t)
	}

	judgments := make([]Judgment, 0)
	for _, a := range assets {
		score, reasons := Score(a, byAsset[a.ID], now)
		if !Qualifies(score, reasons) {
			continue
		}
		tier, _ := Classify(score)
		judgments = append(judgments, Judgment{
			AssetID:  a.ID,
			Score:    score,
			Reasons:  reasons,
			Tier:     tier,
			Deadline: tier.Deadline(now),
		})
	}
	return judgments
}
