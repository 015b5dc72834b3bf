package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"asset-inventory/feature/criticality"
	"asset-inventory/feature/criticality/models"
)

// Row is one asset line of the consolidated report.
type Row struct {
	RecordID       uint      `json:"record_id"`
	AssetID        uint      `json:"asset_id"`
	AssetCode      string    `json:"asset_code"`
	AssetName      string    `json:"asset_name"`
	Category       string    `json:"category"`
	Tier           string    `json:"tier"`
	Score          int       `json:"score"`
	ActionRequired string    `json:"action_required"`
	CostEstimate   *float64  `json:"cost_estimate"`
	Deadline       time.Time `json:"deadline"`
	Resolved       bool      `json:"resolved"`
	Evidence       []string  `json:"evidence"`
}

// Report is the consolidated view of the ledger after a synchronization.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Stats       *criticality.Stats `json:"stats"`
	Rows        []Row              `json:"rows"`
}

var tierOrder = map[string]int{
	string(criticality.TierCritical): 0,
	string(criticality.TierHigh):     1,
	string(criticality.TierMedium):   2,
}

// buildRows joins records with their assets, most urgent first.
// Records whose asset is gone are skipped.
func buildRows(records []models.CriticalityRecord, assets []models.Asset) []Row {
	byID := make(map[uint]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		a, ok := byID[r.AssetID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			RecordID:       r.ID,
			AssetID:        a.ID,
			AssetCode:      a.Code,
			AssetName:      a.Name,
			Category:       a.Category,
			Tier:           r.Tier,
			Score:          r.Score,
			ActionRequired: r.ActionRequired,
			CostEstimate:   r.CostEstimate,
			Deadline:       r.Deadline,
			Resolved:       r.Resolved,
			Evidence:       r.Evidence,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		oi, oj := rank(rows[i].Tier), rank(rows[j].Tier)
		if oi != oj {
			return oi < oj
		}
		if !rows[i].Deadline.Equal(rows[j].Deadline) {
			return rows[i].Deadline.Before(rows[j].Deadline)
		}
		return rows[i].AssetID < rows[j].AssetID
	})
	return rows
}

func rank(tier string) int {
	if o, ok := tierOrder[tier]; ok {
		return o
	}
	return len(tierOrder)
}

var csvHeader = []string{"Asset Code", "Asset Name", "Category", "Tier", "Score", "Action Required", "Cost Estimate", "Deadline", "Resolved", "Evidence"}

// WriteCSV renders the report as CSV. Output is UTF-8 with BOM for clean
// Excel opening on Windows.
func WriteCSV(w io.Writer, rep *Report) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("csv: write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range rep.Rows {
		cost := ""
		if r.CostEstimate != nil {
			cost = strconv.FormatFloat(*r.CostEstimate, 'f', 2, 64)
		}
		if err := cw.Write([]string{
			r.AssetCode,
			r.AssetName,
			r.Category,
			r.Tier,
			strconv.Itoa(r.Score),
			r.ActionRequired,
			cost,
			r.Deadline.Format("2006-01-02"),
			strconv.FormatBool(r.Resolved),
			strings.Join(r.Evidence, ";"),
		}); err != nil {
			return fmt.Errorf("csv: write row %d: %w", r.RecordID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
