package models

import "strings"

// AssetState is the operational state of an asset.
type AssetState int

const (
	// StateOther covers every state without scoring impact (operational, stored, ...).
	StateOther AssetState = iota
	// StateOutOfService means the asset cannot be used at all.
	StateOutOfService
	// StateUnderRepair means the asset is partially available.
	StateUnderRepair
)

func (s AssetState) String() string {
	switch s {
	case StateOutOfService:
		return "Out of Service"
	case StateUnderRepair:
		return "Under Repair"
	default:
		return "Other"
	}
}

// ParseAssetState maps the free-text state of an asset onto AssetState.
// Matching ignores case, surrounding spaces and "_" or "-" separators.
func ParseAssetState(raw string) AssetState {
	switch normalize(raw) {
	case "out of service", "outofservice":
		return StateOutOfService
	case "under repair", "in repair":
		return StateUnderRepair
	default:
		return StateOther
	}
}

// TaskStatus is the lifecycle status of a maintenance task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
	TaskUnknown    TaskStatus = "unknown"
)

// ParseTaskStatus normalizes a stored task status.
func ParseTaskStatus(raw string) TaskStatus {
	switch normalize(raw) {
	case "pending":
		return TaskPending
	case "in progress":
		return TaskInProgress
	case "completed", "done":
		return TaskCompleted
	case "cancelled", "canceled":
		return TaskCancelled
	default:
		return TaskUnknown
	}
}

func normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
