// Package reconcile provides a generic plan-then-apply engine for keeping a
// persisted ledger in line with freshly computed state.
//
// Reconciliation is split in two steps so the decision logic can be tested
// without a live store:
//
// 1. Plan: a feature computes, entirely in memory, the list of Actions
//    (insert, update, delete, set flag, clear flag) plus the entities it
//    deliberately leaves unchanged.
//
// 2. Apply: ApplyPlan executes the actions through a Mutator one at a time.
//    Failures are isolated per item and reported in the Outcome; flag toggles
//    for an entity are skipped when its record action failed.
//
// # Usage Example
//
//	plan := &reconcile.Plan{}
//	plan.Add(reconcile.Action{Type: reconcile.ActionInsert, Key: "42", Payload: record})
//	plan.Add(reconcile.Action{Type: reconcile.ActionSetFlag, Key: "42"})
//
//	outcome, err := reconcile.ApplyPlan(ctx, mutator, plan, reconcile.Options{}, logger)
//	if err != nil {
//	    // context cancelled, actions in outcome.Applied stay applied
//	}
//	fmt.Println(outcome.Count(reconcile.ActionInsert), len(outcome.Failed))
//
// See feature/criticality for the criticality ledger built on top of it.
package reconcile
