package criticality

import "time"

// Tier is a priority tier of the criticality ledger.
type Tier string

const (
	TierNone     Tier = ""
	TierCritical Tier = "CRITICAL"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
)

// Tiers lists the assignable tiers from most to least urgent.
var Tiers = []Tier{TierCritical, TierHigh, TierMedium}

const (
	criticalMinScore = 70
	highMinScore     = 40
)

// DeadlineDays returns the response window of the tier in calendar days.
func (t Tier) DeadlineDays() int {
	switch t {
	case TierCritical:
		return 7
	case TierHigh:
		return 30
	case TierMedium:
		return 90
	default:
		return 0
	}
}

// Classify maps a score to a tier and its deadline in days.
// Scores below QualificationThreshold map to TierNone.
func Classify(score int) (Tier, int) {
	var tier Tier
	switch {
	case score >= criticalMinScore:
		tier = TierCritical
	case score >= highMinScore:
		tier = TierHigh
	case score >= QualificationThreshold:
		tier = TierMedium
	default:
		tier = TierNone
	}
	return tier, tier.DeadlineDays()
}

// Deadline returns now plus the tier's deadline in calendar days.
func (t Tier) Deadline(now time.Time) time.Time {
	return now.AddDate(0, 0, t.DeadlineDays())
}
