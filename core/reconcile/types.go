package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionInsert creates a new ledger row for an entity.
	ActionInsert ActionType = "insert"
	// ActionUpdate refreshes an existing ledger row.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a ledger row that is no longer backed by a judgment.
	ActionDelete ActionType = "delete"
	// ActionSetFlag sets the derived flag on the source entity.
	ActionSetFlag ActionType = "set_flag"
	// ActionClearFlag clears the derived flag on the source entity.
	ActionClearFlag ActionType = "clear_flag"
)

// phases is the order in which ApplyPlan executes action types.
// Record mutations run before flag toggles so a flag only follows a record
// change that actually reached the store.
var phases = []ActionType{ActionDelete, ActionInsert, ActionUpdate, ActionSetFlag, ActionClearFlag}

// IsFlag reports whether the action toggles the source flag.
func (t ActionType) IsFlag() bool {
	return t == ActionSetFlag || t == ActionClearFlag
}

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier the action belongs to.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Payload carries the data the mutator needs (record, record id, ...).
	Payload any `json:"-"`
}

// Unchanged records an entity the plan deliberately leaves alone.
type Unchanged struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Plan contains planned actions and the entities left untouched.
type Plan struct {
	// Actions contains planned mutation operations in planning order.
	Actions []Action `json:"actions"`

	// Unchanged lists the entities that need no mutation.
	Unchanged []Unchanged `json:"unchanged"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Inserts    int `json:"inserts"`
	Updates    int `json:"updates"`
	Deletes    int `json:"deletes"`
	FlagSets   int `json:"flag_sets"`
	FlagClears int `json:"flag_clears"`
	Unchanged  int `json:"unchanged"`
}

// Options controls ApplyPlan behavior.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}

// Failure pairs an action with the error the mutator returned for it.
type Failure struct {
	Action  Action `json:"action"`
	Message string `json:"error"`
	err     error
}

func (f Failure) Error() string {
	return string(f.Action.Type) + " " + f.Action.Key + ": " + f.Message
}

// Unwrap returns the underlying mutator error.
func (f Failure) Unwrap() error {
	return f.err
}

// Outcome reports what ApplyPlan actually did.
type Outcome struct {
	// Applied lists actions that reached the store.
	Applied []Action `json:"applied"`
	// Failed lists actions the mutator rejected.
	Failed []Failure `json:"failed"`
	// Skipped lists actions not attempted (dry-run, or a record action for the same key failed).
	Skipped []Action `json:"skipped"`
}

// Count returns the number of applied actions of the given type.
func (o *Outcome) Count(t ActionType) int {
	n := 0
	for _, a := range o.Applied {
		if a.Type == t {
			n++
		}
	}
	return n
}

// FailedKeys returns the set of keys with at least one failed action.
func (o *Outcome) FailedKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(o.Failed))
	for _, f := range o.Failed {
		keys[f.Action.Key] = struct{}{}
	}
	return keys
}
