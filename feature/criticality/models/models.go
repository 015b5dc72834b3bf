package models

import "time"

// Asset is an inventoried piece of equipment.
//
// MarkedCritical is set by an operator and feeds the scoring rules.
// IsCritical is owned by the synchronization engine and mirrors the ledger;
// keeping them apart means engine writes never change the next run's score.
// AgeYears and EstimatedCost hold the free text of the import sheets.
type Asset struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	Code           string    `gorm:"column:code;type:varchar(64);uniqueIndex" json:"code"`
	Name           string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Category       string    `gorm:"column:category;type:varchar(120)" json:"category"`
	State          string    `gorm:"column:state;type:varchar(64)" json:"state"`
	MarkedCritical bool      `gorm:"column:marked_critical" json:"marked_critical"`
	IsCritical     bool      `gorm:"column:is_critical;index" json:"is_critical"`
	AgeYears       string    `gorm:"column:age_years;type:varchar(32)" json:"age_years"`
	EstimatedCost  string    `gorm:"column:estimated_cost;type:varchar(64)" json:"estimated_cost"`
	Notes          string    `gorm:"column:notes;type:text" json:"notes"`
	Evidence       []string  `gorm:"column:evidence;type:text;serializer:json" json:"evidence"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for assets.
func (Asset) TableName() string {
	return "assets"
}

// MaintenanceTask is a scheduled or completed action on an asset.
type MaintenanceTask struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	AssetID     uint       `gorm:"column:asset_id;index" json:"asset_id"`
	Title       string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Status      string     `gorm:"column:status;type:varchar(32)" json:"status"`
	ScheduledAt *time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for maintenance tasks.
func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}

// ParsedStatus returns the normalized task status.
func (t MaintenanceTask) ParsedStatus() TaskStatus {
	return ParseTaskStatus(t.Status)
}

// PriorityTier is a row of the priority catalog. Rank 1 is the most urgent.
type PriorityTier struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;type:varchar(64);uniqueIndex" json:"name"`
	Rank int    `gorm:"column:tier_rank;uniqueIndex" json:"rank"`
}

// TableName overrides the table name for the priority catalog.
func (PriorityTier) TableName() string {
	return "priority_tiers"
}

// CriticalityRecord is the persisted ledger entry for an asset needing
// prioritized attention. AssetID is unique: one record per asset.
type CriticalityRecord struct {
	ID              uint       `gorm:"column:id;primaryKey" json:"id"`
	AssetID         uint       `gorm:"column:asset_id;uniqueIndex" json:"asset_id"`
	PriorityTierID  uint       `gorm:"column:priority_tier_id;index" json:"priority_tier_id"`
	Tier            string     `gorm:"column:tier;type:varchar(16)" json:"tier"`
	Score           int        `gorm:"column:score" json:"score"`
	ActionRequired  string     `gorm:"column:action_required;type:text" json:"action_required"`
	CostEstimate    *float64   `gorm:"column:cost_estimate" json:"cost_estimate"`
	Deadline        time.Time  `gorm:"column:deadline" json:"deadline"`
	Resolved        bool       `gorm:"column:resolved;index" json:"resolved"`
	ResolutionNotes string     `gorm:"column:resolution_notes;type:text" json:"resolution_notes"`
	ResolvedAt      *time.Time `gorm:"column:resolved_at" json:"resolved_at"`
	Evidence        []string   `gorm:"column:evidence;type:text;serializer:json" json:"evidence"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for the criticality ledger.
func (CriticalityRecord) TableName() string {
	return "criticality_records"
}

// All returns every model managed by the inventory, in migration order.
func All() []any {
	return []any{&PriorityTier{}, &Asset{}, &MaintenanceTask{}, &CriticalityRecord{}}
}
