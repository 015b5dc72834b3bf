package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Mutator executes single plan actions against a store.
// Each call must be independent: ApplyPlan never batches, so one failing
// entity cannot take the rest of the run down with it.
type Mutator interface {
	Insert(ctx context.Context, action Action) error
	Update(ctx context.Context, action Action) error
	Delete(ctx context.Context, action Action) error
	SetFlag(ctx context.Context, key string, value bool) error
}

// ApplyPlan executes the actions in a plan one at a time, phase by phase
// (delete, insert, update, set flag, clear flag).
//
// A failing action is logged and recorded in the outcome; the run continues.
// Flag actions for a key whose record action failed are skipped, so the flag
// keeps describing what is actually persisted. The only error returned is
// context cancellation: mutations applied before it stay applied.
func ApplyPlan(ctx context.Context, m Mutator, plan *Plan, opts Options, logger *zap.Logger) (*Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	outcome := &Outcome{}

	if opts.DryRun {
		outcome.Skipped = append(outcome.Skipped, plan.Actions...)
		return outcome, nil
	}

	failed := make(map[string]struct{})

	for _, phase := range phases {
		for _, action := range plan.Actions {
			if action.Type != phase {
				continue
			}

			if err := ctx.Err(); err != nil {
				return outcome, fmt.Errorf("apply aborted after %d actions: %w", len(outcome.Applied), err)
			}

			if _, ok := failed[action.Key]; ok && action.Type.IsFlag() {
				logger.Warn("Skipping flag change after failed record action",
					zap.String("key", action.Key),
					zap.String("action", string(action.Type)))
				outcome.Skipped = append(outcome.Skipped, action)
				continue
			}

			if err := execute(ctx, m, action); err != nil {
				logger.Warn("Reconcile action failed",
					zap.String("key", action.Key),
					zap.String("action", string(action.Type)),
					zap.Error(err))
				outcome.Failed = append(outcome.Failed, Failure{Action: action, Message: err.Error(), err: err})
				failed[action.Key] = struct{}{}
				continue
			}

			outcome.Applied = append(outcome.Applied, action)
		}
	}

	return outcome, nil
}

func execute(ctx context.Context, m Mutator, action Action) error {
	switch action.Type {
	case ActionInsert:
		return m.Insert(ctx, action)
	case ActionUpdate:
		return m.Update(ctx, action)
	case ActionDelete:
		return m.Delete(ctx, action)
	case ActionSetFlag:
		return m.SetFlag(ctx, action.Key, true)
	case ActionClearFlag:
		return m.SetFlag(ctx, action.Key, false)
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
