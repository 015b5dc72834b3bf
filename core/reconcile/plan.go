package reconcile

// Add appends an action to the plan and updates the summary.
func (p *Plan) Add(a Action) {
	p.Actions = append(p.Actions, a)
	switch a.Type {
	case ActionInsert:
		p.Summary.Inserts++
	case ActionUpdate:
		p.Summary.Updates++
	case ActionDelete:
		p.Summary.Deletes++
	case ActionSetFlag:
		p.Summary.FlagSets++
	case ActionClearFlag:
		p.Summary.FlagClears++
	}
}

// Keep records an entity that needs no mutation.
func (p *Plan) Keep(key, reason string) {
	p.Unchanged = append(p.Unchanged, Unchanged{Key: key, Reason: reason})
	p.Summary.Unchanged++
}

// ActionsOf returns the planned actions of the given type in planning order.
func (p *Plan) ActionsOf(t ActionType) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// IsEmpty reports whether the plan contains no mutations.
func (p *Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}
